package cli

import (
	"context"
	"time"

	"github.com/calvinalkan/deliverables/internal/deliverable"

	flag "github.com/spf13/pflag"
)

// ShowCmd returns the show command.
func ShowCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show deliverable details",
		Exec: func(_ context.Context, io *IO, args []string) error {
			if len(args) == 0 {
				return errIDRequired
			}

			d, err := resolve(app.Store(io).All(), args[0])
			if err != nil {
				return err
			}

			now := app.Now()
			policy := app.Cfg.Policy

			io.Println("id:        " + d.ID)
			io.Println("short_id:  " + d.ShortID())
			io.Println("title:     " + d.Title)
			io.Println("created:   " + d.CreatedAt.In(now.Location()).Format(time.RFC3339))
			io.Println("due:       " + d.DueAt.In(now.Location()).Format(time.RFC3339) + " (" + deliverable.FormatDue(d.DueAt, now) + ")")
			io.Println("remaining: " + deliverable.Remaining(d.DueAt, now))
			fraction := d.Progress(policy, now)
			io.Printf("progress:  %s %s (%s)\n", textBar(fraction, barWidth), percent(fraction), policy)

			return nil
		},
	}
}
