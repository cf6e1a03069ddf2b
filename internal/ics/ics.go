// Package ics serializes deliverables to an iCalendar (RFC 5545) document and
// reads such documents back.
//
// Each record becomes one VTODO with a fixed NEEDS-ACTION status. The encoder
// is stateless; output depends only on the records and the export time.
package ics

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/calvinalkan/deliverables/internal/deliverable"
)

const (
	// MediaType is the MIME type of exported documents.
	MediaType = "text/calendar"

	// DefaultFileName is the file written by [Exporter.ExportToDefaultLocation].
	DefaultFileName = "deliverables.ics"

	// ExportDirName is the subdirectory of the data dir holding exports.
	ExportDirName = "exports"

	// UIDDomain is appended to record ids to form globally unique UIDs.
	UIDDomain = "deliverables.app"

	// CreatedProperty carries createdAt so a re-import restores the full
	// progress window even if a calendar tool rewrites DTSTART.
	CreatedProperty = "X-DELIVERABLE-CREATED"

	prodID     = "-//Deliverables//Deliverables CLI//EN"
	timeLayout = "20060102T150405Z"
	crlf       = "\r\n"

	dirPerm  = 0o750
	filePerm = 0o644
)

// Exporter writes calendar documents. The zero value uses [time.Now].
type Exporter struct {
	// Now returns the export time stamped into every entry (DTSTAMP).
	Now func() time.Time
}

func (e Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}

	return e.Now()
}

// Export returns the document for records, in the given order.
func (e Exporter) Export(records []deliverable.Deliverable) string {
	return Export(records, e.now())
}

// WriteFile writes the document to path atomically. The parent directory must
// exist. Failures wrap [ErrExport].
func (e Exporter) WriteFile(path string, records []deliverable.Deliverable) error {
	doc := e.Export(records)

	err := atomic.WriteFile(path, strings.NewReader(doc))
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrExport, path, err)
	}

	err = os.Chmod(path, filePerm)
	if err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrExport, path, err)
	}

	return nil
}

// ExportToDefaultLocation writes <dataDir>/exports/deliverables.ics, creating
// directories as needed, and returns the path written.
func (e Exporter) ExportToDefaultLocation(dataDir string, records []deliverable.Deliverable) (string, error) {
	dir := DefaultDir(dataDir)

	err := os.MkdirAll(dir, dirPerm)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", ErrExport, dir, err)
	}

	path := filepath.Join(dir, DefaultFileName)

	err = e.WriteFile(path, records)
	if err != nil {
		return "", err
	}

	return path, nil
}

// DefaultDir returns the export directory under dataDir.
func DefaultDir(dataDir string) string {
	return filepath.Join(dataDir, ExportDirName)
}

// Export renders records with stamp as the generation time.
func Export(records []deliverable.Deliverable, stamp time.Time) string {
	var b bytes.Buffer

	writeLine(&b, "BEGIN", "VCALENDAR")
	writeLine(&b, "VERSION", "2.0")
	writeLine(&b, "PRODID", prodID)
	writeLine(&b, "CALSCALE", "GREGORIAN")
	writeLine(&b, "METHOD", "PUBLISH")

	dtstamp := FormatTime(stamp)

	for _, d := range records {
		created := FormatTime(d.CreatedAt)

		writeLine(&b, "BEGIN", "VTODO")
		writeLine(&b, "UID", d.ID+"@"+UIDDomain)
		writeLine(&b, "DTSTAMP", dtstamp)
		writeLine(&b, "DTSTART", created)
		writeLine(&b, "DUE", FormatTime(d.DueAt))
		writeLine(&b, "SUMMARY", Escape(d.Title))
		writeLine(&b, "STATUS", "NEEDS-ACTION")
		writeLine(&b, CreatedProperty, created)
		writeLine(&b, "END", "VTODO")
	}

	writeLine(&b, "END", "VCALENDAR")

	return b.String()
}

// FormatTime renders t in the compact UTC form 20060102T150405Z.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func writeLine(b *bytes.Buffer, name, value string) {
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(value)
	b.WriteString(crlf)
}
