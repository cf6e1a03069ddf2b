package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/calvinalkan/deliverables/internal/deliverable"
)

func Test_ParseIn_Accepts_Day_Unit_When_Given(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]time.Duration{
		"90m":    90 * time.Minute,
		"3d":     72 * time.Hour,
		"1d12h":  36 * time.Hour,
		"0d1s":   time.Second,
		" 2h30m": 150 * time.Minute,
		"1d-1h":  23 * time.Hour,
	} {
		got, err := parseIn(in)
		if err != nil {
			t.Errorf("parseIn(%q): %v", in, err)

			continue
		}

		if got != want {
			t.Errorf("parseIn(%q)=%v, want=%v", in, got, want)
		}
	}
}

func Test_ParseIn_Rejects_Input_When_Not_Positive_Duration(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "d", "-1d", "-5m", "0s", "0d", "1x", "1dd", "soon", "1.5d"} {
		_, err := parseIn(in)
		if !errors.Is(err, errInvalidDuration) {
			t.Errorf("parseIn(%q) err=%v, want errInvalidDuration", in, err)
		}
	}
}

func Test_ParseDue_Uses_Now_Location_When_Zone_Missing(t *testing.T) {
	t.Parallel()

	berlin := time.FixedZone("CET", 3600)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, berlin)

	for _, tt := range []struct {
		in   string
		want time.Time
	}{
		{in: "2026-03-04", want: time.Date(2026, 3, 4, 23, 59, 59, 0, berlin)},
		{in: "2026-03-04 07:15", want: time.Date(2026, 3, 4, 7, 15, 0, 0, berlin)},
		{in: "2026-03-04T07:15", want: time.Date(2026, 3, 4, 7, 15, 0, 0, berlin)},
		{in: "2026-03-04T07:15:00Z", want: time.Date(2026, 3, 4, 7, 15, 0, 0, time.UTC)},
	} {
		got, err := parseDue(tt.in, now)
		if err != nil {
			t.Errorf("parseDue(%q): %v", tt.in, err)

			continue
		}

		if !got.Equal(tt.want) {
			t.Errorf("parseDue(%q)=%v, want=%v", tt.in, got, tt.want)
		}
	}

	_, err := parseDue("next friday", now)
	if !errors.Is(err, errInvalidDue) {
		t.Errorf("err=%v, want errInvalidDue", err)
	}
}

func Test_Resolve_Matches_Full_Short_And_Prefix_When_Unique(t *testing.T) {
	t.Parallel()

	v7, err := deliverable.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	short := deliverable.ShortID(v7)
	records := []deliverable.Deliverable{
		{ID: v7, Title: "generated"},
		{ID: "legacy-001", Title: "imported"},
		{ID: "legacy-002", Title: "imported too"},
	}

	for _, tt := range []struct {
		arg    string
		wantID string
	}{
		{arg: v7, wantID: v7},
		{arg: short, wantID: v7},
		{arg: short[:6], wantID: v7},
		{arg: "LEGACY-001", wantID: "legacy-001"},
		{arg: "legacy-002", wantID: "legacy-002"},
		{arg: " legacy-001 ", wantID: "legacy-001"},
	} {
		got, err := resolve(records, tt.arg)
		if err != nil {
			t.Errorf("resolve(%q): %v", tt.arg, err)

			continue
		}

		if got.ID != tt.wantID {
			t.Errorf("resolve(%q)=%s, want=%s", tt.arg, got.ID, tt.wantID)
		}
	}

	_, err = resolve(records, "legacy")
	if !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("err=%v, want ErrAmbiguousID", err)
	}

	_, err = resolve(records, "zzz")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err=%v, want ErrNotFound", err)
	}

	_, err = resolve(records, "  ")
	if !errors.Is(err, errIDRequired) {
		t.Errorf("err=%v, want errIDRequired", err)
	}
}

func Test_ResolveAll_Collapses_Repeats_When_Same_Record_Named_Twice(t *testing.T) {
	t.Parallel()

	records := []deliverable.Deliverable{{ID: "a1"}, {ID: "b2"}}

	got, err := resolveAll(records, []string{"a1", "A1", "b", "a"})
	if err != nil {
		t.Fatalf("resolveAll: %v", err)
	}

	if len(got) != 2 || got[0].ID != "a1" || got[1].ID != "b2" {
		t.Errorf("got %+v, want a1 then b2", got)
	}
}
