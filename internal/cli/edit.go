package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// EditCmd returns the edit command.
func EditCmd(app *App) *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.StringP("title", "t", "", "New title")
	addDueFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "edit <id> [flags]",
		Short: "Change title or due time",
		Long: `Change the title and/or due time of a deliverable. The ID and creation
time are kept. Unlike add, a due time in the past is accepted.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execEdit(io, app, fs, args)
		},
	}
}

func execEdit(io *IO, app *App, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errIDRequired
	}

	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " "))
	}

	newDue, dueSet, err := dueFromFlags(fs, app.Now())
	if err != nil {
		return err
	}

	titleSet := fs.Changed("title")
	if !titleSet && !dueSet {
		return errNoChanges
	}

	newTitle, _ := fs.GetString("title")
	newTitle = strings.TrimSpace(newTitle)

	if titleSet && newTitle == "" {
		return errTitleRequired
	}

	st := app.Store(io)

	d, err := resolve(st.All(), args[0])
	if err != nil {
		return err
	}

	title, due := d.Title, d.DueAt
	if titleSet {
		title = newTitle
	}

	if dueSet {
		due = newDue
	}

	st.Update(d.WithEdits(title, due))

	io.Println("Updated", d.ShortID())

	return nil
}
