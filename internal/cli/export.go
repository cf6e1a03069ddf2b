package cli

import (
	"context"

	"github.com/calvinalkan/deliverables/internal/ics"

	flag "github.com/spf13/pflag"
)

// ExportCmd returns the export command.
func ExportCmd(app *App) *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.StringP("output", "o", "", "Write to `file` instead of the default location (- for stdout)")

	return &Command{
		Flags: fs,
		Usage: "export [flags]",
		Short: "Export deliverables as an iCalendar file",
		Long: `Write all deliverables as VTODO entries of one iCalendar (.ics) document,
soonest due first. Without -o the file goes to <data_dir>/exports/deliverables.ics.
Prints the path written.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			records := app.Store(io).Sorted()
			exporter := ics.Exporter{Now: app.Now}

			output, _ := fs.GetString("output")

			switch output {
			case "":
				path, err := exporter.ExportToDefaultLocation(app.Cfg.DataDirAbs, records)
				if err != nil {
					return err
				}

				io.Println(path)
			case "-":
				io.Printf("%s", exporter.Export(records))
			default:
				path := app.path(output)

				err := exporter.WriteFile(path, records)
				if err != nil {
					return err
				}

				io.Println(path)
			}

			return nil
		},
	}
}
