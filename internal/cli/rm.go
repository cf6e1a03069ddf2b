package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// RmCmd returns the rm command.
func RmCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage: "rm <id>...",
		Short: "Delete deliverables",
		Exec: func(_ context.Context, io *IO, args []string) error {
			st := app.Store(io)

			targets, err := resolveAll(st.All(), args)
			if err != nil {
				return err
			}

			for _, d := range targets {
				st.DeleteRecord(d)
				io.Println("Deleted", d.ShortID())
			}

			return nil
		},
	}
}
