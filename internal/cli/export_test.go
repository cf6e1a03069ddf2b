package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calvinalkan/deliverables/internal/cli"
)

func Test_Export_Writes_Default_Location_When_No_Output_Given(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteDataFile(fixture)
	c.Advance(time.Hour)

	path := c.MustRun("export")

	if want := filepath.Join(c.DataDir(), "exports", "deliverables.ics"); path != want {
		t.Fatalf("path=%q, want=%q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	doc := string(data)
	cli.AssertContains(t, doc, "BEGIN:VCALENDAR\r\n")
	cli.AssertContains(t, doc, "DTSTAMP:20260302T100000Z\r\n")
	cli.AssertContains(t, doc, "UID:aaaa1111@deliverables.app\r\n")
	cli.AssertContains(t, doc, "DUE:20260302T120000Z\r\n")

	if strings.Count(doc, "BEGIN:VTODO") != 3 {
		t.Errorf("want 3 entries:\n%s", doc)
	}

	// Soonest due first.
	if strings.Index(doc, "SUMMARY:Essay") > strings.Index(doc, "SUMMARY:Lab report") {
		t.Errorf("entries not sorted by due time:\n%s", doc)
	}
}

func Test_Export_Writes_Given_File_When_Output_Flag_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("add", "Essay, draft; v2")

	path := c.MustRun("export", "-o", "cal.ics")
	if want := filepath.Join(c.Dir, "cal.ics"); path != want {
		t.Fatalf("path=%q, want=%q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	cli.AssertContains(t, string(data), `SUMMARY:Essay\, draft\; v2`+"\r\n")
}

func Test_Export_Prints_Document_When_Output_Is_Dash(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteDataFile(fixture)

	stdout, _, exitCode := c.Run("export", "-o", "-")
	if exitCode != 0 {
		t.Fatalf("exitCode=%d", exitCode)
	}

	if !strings.HasPrefix(stdout, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(stdout, "END:VCALENDAR\r\n") {
		t.Errorf("stdout is not a calendar document:\n%q", stdout)
	}
}

func Test_Export_Fails_When_Target_Not_Writable(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteDataFile(fixture)

	stderr := c.MustFail("export", "-o", filepath.Join("missing", "cal.ics"))
	cli.AssertContains(t, stderr, "export calendar")
}

func Test_Import_Adds_Records_When_Calendar_Exported_Elsewhere(t *testing.T) {
	t.Parallel()

	src := cli.NewCLI(t)
	src.WriteDataFile(fixture)
	path := src.MustRun("export")

	dst := cli.NewCLI(t)
	dst.MustRun("add", "already here", "--in", "5d")

	if got, want := dst.MustRun("import", path), "Imported 3, skipped 0 already present"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if got, want := dst.MustRun("ls", "--json"), importedView(t, src); !strings.Contains(got, want) {
		t.Errorf("imported records differ\n got: %s\nwant inside: %s", got, want)
	}

	if got, want := dst.MustRun("import", path), "Imported 0, skipped 3 already present"; got != want {
		t.Errorf("second import stdout=%q, want=%q", got, want)
	}
}

// importedView returns src's ls --json without the array brackets, so it can
// be searched for inside a larger listing.
func importedView(t *testing.T, src *cli.CLI) string {
	t.Helper()

	out := src.MustRun("ls", "--json")

	return strings.TrimSuffix(strings.TrimPrefix(out, "["), "]")
}

func Test_Import_Reads_Stdin_When_File_Is_Dash(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:meeting-1@example.com",
		"DTSTART:20260302T100000Z",
		"DTEND:20260303T100000Z",
		"SUMMARY:Review",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	stdout, stderr, exitCode := c.RunWithInput(doc, "import", "-")
	if exitCode != 0 {
		t.Fatalf("exitCode=%d stderr=%s", exitCode, stderr)
	}

	cli.AssertContains(t, stdout, "Imported 1")

	out := c.MustRun("show", "meeting-1@example.com")
	cli.AssertContains(t, out, "title:     Review")
	cli.AssertContains(t, out, "due:       2026-03-03T10:00:00Z")
}

func Test_Import_Skips_Entries_Without_UID_When_Imported_Twice(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "foreign.ics"), strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VTODO",
		"DTSTART:20260302T090000Z",
		"DUE:20260304T090000Z",
		"SUMMARY:Lab report",
		"END:VTODO",
		"END:VCALENDAR",
	}, "\r\n"))

	if got, want := c.MustRun("import", "foreign.ics"), "Imported 1, skipped 0 already present"; got != want {
		t.Errorf("first import stdout=%q, want=%q", got, want)
	}

	if got, want := c.MustRun("import", "foreign.ics"), "Imported 0, skipped 1 already present"; got != want {
		t.Errorf("second import stdout=%q, want=%q", got, want)
	}

	if n := strings.Count(c.MustRun("ls"), "Lab report"); n != 1 {
		t.Errorf("ls lists %d copies, want 1", n)
	}
}

func Test_Import_Fails_When_Calendar_Malformed(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "bad.ics"), "BEGIN:VTODO\nUID:a\nSUMMARY:no due\nEND:VTODO\n")

	cli.AssertContains(t, c.MustFail("import", "bad.ics"), "malformed calendar")
	cli.AssertContains(t, c.MustFail("import", "absent.ics"), "no such file")
	cli.AssertContains(t, c.MustFail("import"), "file is required")

	_, err := os.Stat(c.DataFile())
	if err == nil {
		t.Error("failed imports must not create the data file")
	}
}
