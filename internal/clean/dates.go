package clean

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateStrategy selects how a marketplace's date column is parsed
type DateStrategy int

const (
	// DateDirect detects one layout from the first value and applies it to every row.
	DateDirect DateStrategy = iota
	// DateDayFirst parses each row on its own, trying day-first layouts before ISO ones.
	DateDayFirst
)

func (s DateStrategy) String() string {
	if s == DateDayFirst {
		return "day-first"
	}
	return "direct"
}

// Layouts tried by DateDirect, month-first where ambiguous
var directLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06 15:04",
	"1/2/06",
	"2 Jan 2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"20060102",
}

// Layouts tried by DateDayFirst, in order
var dayFirstLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"2/1/2006",
	"2/1/06 15:04",
	"2/1/06",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006",
	"2.1.2006",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"20060102",
}

// parseWith tries layouts in order and returns the first match
func parseWith(layouts []string, value string) (time.Time, string, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return t, l, true
		}
	}
	return time.Time{}, "", false
}

// Excel stores dates as days since 1899-12-30; anything past 9999-12-31 is not a date.
const maxExcelSerial = 2958465

// parseSerial accepts an Excel serial date such as "45296" or "45296.4305"
func parseSerial(value string) (time.Time, bool) {
	if !strings.ContainsAny(value, "0123456789") || strings.ContainsAny(value, "-/:") {
		return time.Time{}, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 1 || f > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dateParser parses one column of date values under a strategy
type dateParser struct {
	strategy DateStrategy
	// fixed layout detected by DateDirect; "serial" for Excel serial numbers
	layout string
}

const serialLayout = "serial"

func newDateParser(strategy DateStrategy) *dateParser {
	return &dateParser{strategy: strategy}
}

// Parse returns the full-precision timestamp for value
func (p *dateParser) Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if p.strategy == DateDayFirst {
		if t, ok := parseSerial(value); ok {
			return t, nil
		}
		if t, _, ok := parseWith(dayFirstLayouts, value); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("no known date layout matches")
	}

	if p.layout == "" {
		if _, ok := parseSerial(value); ok {
			p.layout = serialLayout
		} else if _, l, ok := parseWith(directLayouts, value); ok {
			p.layout = l
		} else {
			return time.Time{}, fmt.Errorf("no known date layout matches")
		}
	}

	if p.layout == serialLayout {
		if t, ok := parseSerial(value); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("expected an Excel serial date")
	}
	t, err := time.Parse(p.layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected layout %q", p.layout)
	}
	return t, nil
}

// calendarDate drops the time of day, keeping the date as it reads in the source offset
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeDate parses value with the given strategy and returns the calendar date.
// Already normalized values ("2006-01-02") come back unchanged.
func NormalizeDate(strategy DateStrategy, value string) (time.Time, error) {
	t, err := newDateParser(strategy).Parse(value)
	if err != nil {
		return time.Time{}, err
	}
	return calendarDate(t), nil
}
