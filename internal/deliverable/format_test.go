package deliverable_test

import (
	"testing"
	"time"

	"github.com/calvinalkan/deliverables/internal/deliverable"
)

func Test_FormatDue_Labels_Relative_Days_When_Called(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	for _, tt := range []struct {
		name string
		due  time.Time
		want string
	}{
		{name: "today", due: time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), want: "Today, 5:00 PM"},
		{name: "today earlier", due: time.Date(2026, 3, 2, 8, 5, 0, 0, time.UTC), want: "Today, 8:05 AM"},
		{name: "tomorrow", due: time.Date(2026, 3, 3, 0, 15, 0, 0, time.UTC), want: "Tomorrow, 12:15 AM"},
		{name: "later", due: time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC), want: "Mar 14, 11:59 PM"},
		{name: "yesterday", due: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), want: "Mar 1, 12:00 PM"},
		{name: "next year", due: time.Date(2027, 1, 5, 9, 0, 0, 0, time.UTC), want: "Jan 5 2027, 9:00 AM"},
	} {
		if got := deliverable.FormatDue(tt.due, now); got != tt.want {
			t.Errorf("%s: FormatDue = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func Test_FormatDue_Uses_Now_Location_When_Zones_Differ(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*3600)
	now := time.Date(2026, 3, 2, 20, 0, 0, 0, tokyo)
	due := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC) // 01:00 next day in JST

	if got := deliverable.FormatDue(due, now); got != "Tomorrow, 1:00 AM" {
		t.Fatalf("FormatDue = %q", got)
	}
}

func Test_Remaining_Renders_Two_Units_When_Called(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for _, tt := range []struct {
		left time.Duration
		want string
	}{
		{left: 52*time.Hour + 10*time.Minute, want: "2d 4h"},
		{left: 3*time.Hour + 12*time.Minute + 9*time.Second, want: "3h 12m"},
		{left: 4*time.Minute + 2*time.Second, want: "4m 2s"},
		{left: 45*time.Second + 300*time.Millisecond, want: "45s"},
		{left: 0, want: "overdue 0s"},
		{left: -(time.Hour + 5*time.Minute), want: "overdue 1h 5m"},
	} {
		if got := deliverable.Remaining(now.Add(tt.left), now); got != tt.want {
			t.Errorf("Remaining(%s) = %q, want %q", tt.left, got, tt.want)
		}
	}
}
