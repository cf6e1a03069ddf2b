package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/calvinalkan/deliverables/internal/deliverable"
	"github.com/calvinalkan/deliverables/internal/ics"

	flag "github.com/spf13/pflag"
)

// ImportCmd returns the import command.
func ImportCmd(app *App) *Command {
	return &Command{
		Flags: flag.NewFlagSet("import", flag.ContinueOnError),
		Usage: "import <file>",
		Short: "Import deliverables from an iCalendar file",
		Long: `Read VTODO and VEVENT entries from an iCalendar file (- for stdin) and add
those whose ID is not already present. DUE (or DTEND) becomes the due time.
Entries without a UID get an ID derived from their summary and times, so
importing the same file again skips them.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			if len(args) == 0 {
				return errFileRequired
			}

			parsed, err := readCalendar(app, args[0])
			if err != nil {
				return err
			}

			st := app.Store(io)
			added, skipped := 0, 0

			for _, d := range parsed {
				if _, exists := st.Get(d.ID); exists {
					skipped++

					continue
				}

				st.Add(d)

				added++
			}

			io.Printf("Imported %d, skipped %d already present\n", added, skipped)

			return nil
		},
	}
}

func readCalendar(app *App, name string) ([]deliverable.Deliverable, error) {
	if name == "-" {
		if app.Stdin == nil {
			return nil, fmt.Errorf("%w: no stdin", errFileRequired)
		}

		return ics.Parse(app.Stdin)
	}

	path := app.path(name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ics.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}
