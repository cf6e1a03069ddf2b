package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/calvinalkan/deliverables/internal/deliverable"
	"github.com/calvinalkan/deliverables/internal/progress"

	flag "github.com/spf13/pflag"
)

const barWidth = 10

// LsCmd returns the ls command.
func LsCmd(app *App) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.Bool("json", false, "Output as JSON array")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List deliverables, soonest due first",
		Long: `List all deliverables sorted by due time, soonest first.

Each line shows the short ID, the remaining-time bar under the configured
progress policy, the due time and the title. Overdue deliverables are
marked OVERDUE.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execLs(io, app, fs)
		},
	}
}

// lsJSON is the JSON output format for ls --json.
type lsJSON struct {
	ID        string    `json:"id"`
	ShortID   string    `json:"shortId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	DueAt     time.Time `json:"dueAt"`
	Progress  float64   `json:"progress"`
	Overdue   bool      `json:"overdue"`
}

func execLs(io *IO, app *App, fs *flag.FlagSet) error {
	records := app.Store(io).Sorted()
	now := app.Now()
	policy := app.Cfg.Policy

	asJSON, _ := fs.GetBool("json")
	if asJSON {
		return printLsJSON(io, records, policy, now)
	}

	if len(records) == 0 {
		io.ErrPrintln("no deliverables")

		return nil
	}

	for _, d := range records {
		io.Println(formatLine(d, policy, now))
	}

	return nil
}

func printLsJSON(io *IO, records []deliverable.Deliverable, policy progress.Policy, now time.Time) error {
	items := make([]lsJSON, 0, len(records))

	for _, d := range records {
		items = append(items, lsJSON{
			ID:        d.ID,
			ShortID:   d.ShortID(),
			Title:     d.Title,
			CreatedAt: d.CreatedAt,
			DueAt:     d.DueAt,
			Progress:  d.Progress(policy, now),
			Overdue:   d.IsOverdue(now),
		})
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	io.Println(string(data))

	return nil
}

func formatLine(d deliverable.Deliverable, policy progress.Policy, now time.Time) string {
	fraction := d.Progress(policy, now)

	status := percent(fraction)
	if d.IsOverdue(now) {
		status = "OVERDUE"
	}

	title := strings.ReplaceAll(d.Title, "\n", " ")

	return fmt.Sprintf("%s  %s %-7s  %s  %s", d.ShortID(), textBar(fraction, barWidth), status, deliverable.FormatDue(d.DueAt, now), title)
}

// textBar draws fraction (0..1) as a fixed-width ASCII bar.
func textBar(fraction float64, width int) string {
	filled := int(math.Round(fraction * float64(width)))
	filled = max(0, min(width, filled))

	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func percent(fraction float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(fraction*100)))
}
