package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/calvinalkan/deliverables/internal/deliverable"
)

// resolve finds the record an id argument refers to. The argument may be the
// full id, the short id (case-insensitive), or a unique prefix of either.
func resolve(records []deliverable.Deliverable, arg string) (deliverable.Deliverable, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return deliverable.Deliverable{}, errIDRequired
	}

	upper := strings.ToUpper(arg)

	for _, d := range records {
		if d.ID == arg || d.ShortID() == upper {
			return d, nil
		}
	}

	var matches []deliverable.Deliverable

	for _, d := range records {
		if !strings.HasPrefix(d.ID, arg) && !strings.HasPrefix(d.ShortID(), upper) {
			continue
		}

		seen := slices.ContainsFunc(matches, func(m deliverable.Deliverable) bool { return m.ID == d.ID })
		if !seen {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return deliverable.Deliverable{}, fmt.Errorf("%w: %s", ErrNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ShortID())
		}

		return deliverable.Deliverable{}, fmt.Errorf("%w: %s matches %s", ErrAmbiguousID, arg, strings.Join(ids, ", "))
	}
}

// resolveAll resolves every argument before anything is changed, so one bad id
// aborts the whole command. Repeated references to the same record collapse.
func resolveAll(records []deliverable.Deliverable, args []string) ([]deliverable.Deliverable, error) {
	if len(args) == 0 {
		return nil, errIDRequired
	}

	out := make([]deliverable.Deliverable, 0, len(args))

	for _, arg := range args {
		d, err := resolve(records, arg)
		if err != nil {
			return nil, err
		}

		if !slices.ContainsFunc(out, func(o deliverable.Deliverable) bool { return o.ID == d.ID }) {
			out = append(out, d)
		}
	}

	return out, nil
}
