package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	wildcardAll  = "all"
	wildcardBoth = "Both"
)

// Selection is a filter value that is either a wildcard or one concrete name.
// The zero value is the wildcard.
type Selection struct {
	value string
	set   bool
}

func Any() Selection {
	return Selection{}
}

func Only(value string) Selection {
	return Selection{value: value, set: true}
}

// ParseSelection maps the UI sentinels ("", "all") onto the wildcard.
func ParseSelection(raw string) Selection {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, wildcardAll) {
		return Any()
	}
	return Only(raw)
}

func (s Selection) IsAny() bool {
	return !s.set
}

func (s Selection) Value() (string, bool) {
	return s.value, s.set
}

func (s Selection) Matches(value string) bool {
	return !s.set || s.value == value
}

func (s Selection) String() string {
	if !s.set {
		return wildcardAll
	}
	return s.value
}

// ParseDirection accepts Import, Export, or the Both/all/empty wildcard.
func ParseDirection(raw string) (Selection, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "", strings.EqualFold(raw, wildcardBoth), strings.EqualFold(raw, wildcardAll):
		return Any(), nil
	case strings.EqualFold(raw, string(DirectionImport)):
		return Only(string(DirectionImport)), nil
	case strings.EqualFold(raw, string(DirectionExport)):
		return Only(string(DirectionExport)), nil
	default:
		return Any(), fmt.Errorf("unknown direction %q", raw)
	}
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r DateRange) Empty() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Inverted reports whether From lies after To on the calendar.
func (r DateRange) Inverted() bool {
	return r.From.Format(DateLayout) > r.To.Format(DateLayout)
}

type TicketFilter struct {
	CompanyID      string
	Range          DateRange
	JobName        Selection
	Material       Selection
	HaulingCompany Selection
	TruckType      Selection
	Direction      Selection
}

// ErrRangeTooLong is returned by NormalizeRange when a range spans more days
// than allowed.
var ErrRangeTooLong = errors.New("date range too long")

// NormalizeRange fills a missing bound from defaultDays and rejects ranges
// longer than maxDays. An inverted range is left untouched so that it selects
// nothing.
func (f TicketFilter) NormalizeRange(now time.Time, defaultDays, maxDays int) (TicketFilter, error) {
	today := truncateDay(now)
	if f.Range.To.IsZero() {
		f.Range.To = today
	}
	if f.Range.From.IsZero() {
		f.Range.From = f.Range.To.AddDate(0, 0, -defaultDays)
	}
	if f.Range.Inverted() {
		return f, nil
	}
	if maxDays > 0 && f.Range.To.Sub(f.Range.From) > time.Duration(maxDays)*24*time.Hour {
		return f, fmt.Errorf("%w: %s to %s exceeds %d days", ErrRangeTooLong,
			f.Range.From.Format(DateLayout), f.Range.To.Format(DateLayout), maxDays)
	}
	return f, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
