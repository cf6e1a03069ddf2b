package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calvinalkan/deliverables/internal/tui"

	flag "github.com/spf13/pflag"
)

// WatchCmd returns the watch command.
func WatchCmd(app *App) *Command {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.Bool("inline", false, "Render below the prompt instead of the alternate screen")

	return &Command{
		Flags: fs,
		Usage: "watch [flags]",
		Short: "Live countdown view",
		Long: `Show all deliverables with progress bars that update every second.

Keys: up/down (or k/j) select, d marks the selection complete, r reloads the
data file, q quits.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execWatch(ctx, io, app, fs)
		},
	}
}

func execWatch(ctx context.Context, io *IO, app *App, fs *flag.FlagSet) error {
	model := tui.New(app.Store(io), tui.Options{Policy: app.Cfg.Policy, Now: app.Now})
	defer model.Close()

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(app.Stdin),
		tea.WithOutput(io.Out()),
	}

	inline, _ := fs.GetBool("inline")
	if !inline {
		opts = append(opts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		// Interrupted by a signal: a normal way to leave the view.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("watch: %w", err)
	}

	return nil
}
