package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/calvinalkan/deliverables/internal/deliverable"

	flag "github.com/spf13/pflag"
)

// AddCmd returns the add command.
func AddCmd(app *App) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	addDueFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "add <title> [flags]",
		Short: "Add deliverable, prints its ID",
		Long: `Add a deliverable. Prints the short ID on success.

The due time defaults to 24 hours from now and must lie in the future.
Several arguments are joined into one title.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execAdd(io, app, fs, args)
		},
	}
}

func execAdd(io *IO, app *App, fs *flag.FlagSet, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return errTitleRequired
	}

	now := app.Now()

	due, set, err := dueFromFlags(fs, now)
	if err != nil {
		return err
	}

	if !set {
		due = now.Add(deliverable.DefaultDueIn)
	}

	if !due.After(now) {
		return fmt.Errorf("%w: %s", errDueInPast, due.Format(time.RFC3339))
	}

	d, err := deliverable.New(title, now, due)
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	app.Store(io).Add(d)

	io.Println(d.ShortID())

	return nil
}
