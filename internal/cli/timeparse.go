package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

const (
	dateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

var dueLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

func addDueFlags(fs *flag.FlagSet) {
	fs.String("due", "", "Due time: RFC 3339, \"2006-01-02 15:04\" or \"2006-01-02\" (end of day)")
	fs.String("in", "", "Due after a duration from now, e.g. 90m, 3d, 1d12h")
}

// dueFromFlags returns the due time requested by --due or --in. set is false
// when neither flag was given.
func dueFromFlags(fs *flag.FlagSet, now time.Time) (due time.Time, set bool, err error) {
	dueSet, inSet := fs.Changed("due"), fs.Changed("in")

	switch {
	case dueSet && inSet:
		return time.Time{}, false, errDueConflict
	case dueSet:
		v, _ := fs.GetString("due")

		due, err = parseDue(v, now)
		if err != nil {
			return time.Time{}, false, err
		}

		return due, true, nil
	case inSet:
		v, _ := fs.GetString("in")

		d, parseErr := parseIn(v)
		if parseErr != nil {
			return time.Time{}, false, parseErr
		}

		return now.Add(d), true, nil
	default:
		return time.Time{}, false, nil
	}
}

// parseDue parses an absolute due time. Values without a zone are taken in
// now's location; a bare date means the last second of that day.
func parseDue(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}

	for _, layout := range dueLayouts {
		t, err = time.ParseInLocation(layout, s, now.Location())
		if err == nil {
			return t, nil
		}
	}

	t, err = time.ParseInLocation(dateLayout, s, now.Location())
	if err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location()), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q (want RFC 3339, \"2006-01-02 15:04\" or \"2006-01-02\")", errInvalidDue, s)
}

// parseIn parses a positive duration. On top of [time.ParseDuration] units it
// accepts a leading day count: "3d", "1d12h".
func parseIn(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	rest := s

	var total time.Duration

	if days, after, ok := strings.Cut(rest, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", errInvalidDuration, s)
		}

		total = time.Duration(n) * day
		rest = after
	}

	if rest != "" {
		d, err := time.ParseDuration(rest)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errInvalidDuration, s)
		}

		total += d
	}

	if total <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", errInvalidDuration, s)
	}

	return total, nil
}
