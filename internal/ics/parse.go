package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/calvinalkan/deliverables/internal/deliverable"
)

const (
	propUID     = ical.ComponentProperty("UID")
	propSummary = ical.ComponentProperty("SUMMARY")
	propDue     = ical.ComponentProperty("DUE")
	propDtStart = ical.ComponentProperty("DTSTART")
	propDtEnd   = ical.ComponentProperty("DTEND")
	propCreated = ical.ComponentProperty("CREATED")
	propExtra   = ical.ComponentProperty(CreatedProperty)
)

// importNamespace seeds the ids derived for entries that carry no UID.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(UIDDomain))

// Parse reads VTODO and VEVENT entries from an iCalendar document.
//
// The id comes from UID with the @deliverables.app suffix removed. An entry
// without a UID gets an id derived from its SUMMARY, due time and DTSTART, so
// the same entry maps to the same id on every import. The title comes from
// SUMMARY. createdAt prefers X-DELIVERABLE-CREATED, then DTSTART, then
// CREATED; with none of them the entry gets a zero-length window at its due
// time. The due time is DUE, or DTEND for events. An entry without a due time
// fails with [ErrMalformed], as does a document that is not a calendar.
func Parse(r io.Reader) ([]deliverable.Deliverable, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var out []deliverable.Deliverable

	for i, c := range cal.Components {
		var e entry

		switch comp := c.(type) {
		case *ical.VTodo:
			e = entry{kind: "VTODO", index: i, base: &comp.ComponentBase}
		case *ical.VEvent:
			e = entry{kind: "VEVENT", index: i, base: &comp.ComponentBase}
		default:
			continue
		}

		d, err := e.deliverable()
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	return out, nil
}

type entry struct {
	kind  string
	index int
	base  *ical.ComponentBase
}

func (e entry) deliverable() (deliverable.Deliverable, error) {
	dueProp, ok := e.first(propDue, propDtEnd)
	if !ok {
		return deliverable.Deliverable{}, fmt.Errorf("%w: %s #%d has no DUE or DTEND", ErrMalformed, e.kind, e.index+1)
	}

	due, err := parseTime(dueProp)
	if err != nil {
		return deliverable.Deliverable{}, fmt.Errorf("%w: %s #%d: %s: %w", ErrMalformed, e.kind, e.index+1, dueProp.IANAToken, err)
	}

	created := due

	if p, ok := e.first(propExtra, propDtStart, propCreated); ok {
		created, err = parseTime(p)
		if err != nil {
			return deliverable.Deliverable{}, fmt.Errorf("%w: %s #%d: %s: %w", ErrMalformed, e.kind, e.index+1, p.IANAToken, err)
		}
	}

	title := Unescape(e.value(propSummary))

	id := strings.TrimSuffix(e.value(propUID), "@"+UIDDomain)
	if id == "" {
		id = derivedID(title, dueProp.Value, e.value(propDtStart))
	}

	return deliverable.Deliverable{
		ID:        id,
		Title:     title,
		CreatedAt: created,
		DueAt:     due,
	}, nil
}

// first returns the first of names present with a non-empty value.
func (e entry) first(names ...ical.ComponentProperty) (*ical.IANAProperty, bool) {
	for _, n := range names {
		if p := e.base.GetProperty(n); p != nil && p.Value != "" {
			return p, true
		}
	}

	return nil, false
}

func (e entry) value(name ical.ComponentProperty) string {
	if p := e.base.GetProperty(name); p != nil {
		return p.Value
	}

	return ""
}

func derivedID(fields ...string) string {
	return uuid.NewSHA1(importNamespace, []byte(strings.Join(fields, "\x00"))).String()
}

// parseTime accepts UTC (…Z), floating local, TZID-qualified and date-only
// values.
func parseTime(p *ical.IANAProperty) (time.Time, error) {
	v := p.Value

	if strings.HasSuffix(v, "Z") {
		return time.Parse(timeLayout, v)
	}

	loc := time.Local

	if tzid := p.ICalParameters["TZID"]; len(tzid) > 0 && tzid[0] != "" {
		l, err := time.LoadLocation(tzid[0])
		if err == nil {
			loc = l
		}
	}

	if len(v) == len("20060102") {
		return time.ParseInLocation("20060102", v, loc)
	}

	return time.ParseInLocation("20060102T150405", v, loc)
}
