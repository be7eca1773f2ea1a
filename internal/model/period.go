package model

import (
	"fmt"
	"strings"
	"time"
)

// Period selects which expenses a listing covers.
type Period string

const (
	// PeriodDay covers everything since local midnight.
	PeriodDay Period = "day"
	// PeriodWeek is a rolling window of the last 7 days.
	PeriodWeek Period = "week"
	// PeriodMonth is a rolling window of the last 30 days.
	PeriodMonth Period = "month"
	// PeriodAll applies no date filter.
	PeriodAll Period = "all"
)

// Periods lists every period in menu order.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodAll}

// ParsePeriod converts user input into a Period.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid period %q: must be one of day, week, month, all", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return true
	default:
		return false
	}
}

// Label returns the human-readable menu label for the period.
func (p Period) Label() string {
	switch p {
	case PeriodDay:
		return "Today"
	case PeriodWeek:
		return "This Week"
	case PeriodMonth:
		return "This Month"
	default:
		return "All Time"
	}
}

// Window returns the inclusive [start, now] range the period covers.
// Bounded is false for PeriodAll.
func (p Period) Window(now time.Time) (start time.Time, bounded bool) {
	switch p {
	case PeriodDay:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}
