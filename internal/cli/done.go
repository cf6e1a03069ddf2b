package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// DoneCmd returns the done command.
func DoneCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("done", flag.ContinueOnError),
		Usage: "done <id>...",
		Short: "Mark deliverables complete",
		Long: `Mark one or more deliverables complete. Completed deliverables are removed
from the list; no history is kept.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execDone(io, app, args)
		},
	}
}

func execDone(io *IO, app *App, args []string) error {
	st := app.Store(io)

	targets, err := resolveAll(st.All(), args)
	if err != nil {
		return err
	}

	for _, d := range targets {
		st.Complete(d)
		io.Println("Completed", d.ShortID())
	}

	return nil
}
