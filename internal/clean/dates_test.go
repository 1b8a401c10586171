package clean

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		strategy DateStrategy
		in       string
		want     time.Time
	}{
		{DateDirect, "2024-01-15", day(2024, time.January, 15)},
		{DateDirect, "2024-01-15T23:59:00+04:00", day(2024, time.January, 15)},
		{DateDirect, "2024-01-15T23:59:00.123Z", day(2024, time.January, 15)},
		{DateDirect, "03/05/2024", day(2024, time.March, 5)},
		{DateDirect, "45296", day(2024, time.January, 5)},
		{DateDirect, "45296.75", day(2024, time.January, 5)},
		{DateDayFirst, "03/05/2024", day(2024, time.May, 3)},
		{DateDayFirst, "31/12/2023 18:45", day(2023, time.December, 31)},
		{DateDayFirst, "7-2-2024", day(2024, time.February, 7)},
		{DateDayFirst, "2024-02-07 10:00:00", day(2024, time.February, 7)},
		{DateDayFirst, "45296", day(2024, time.January, 5)},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.strategy, tt.in)
		if err != nil {
			t.Fatalf("%s %q: %v", tt.strategy, tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("%s %q: got=%s want=%s", tt.strategy, tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDateIsIdempotent(t *testing.T) {
	inputs := []string{"2024-01-15T10:00:00Z", "45296", "15/01/2024 08:00", "2023-12-31"}
	for _, strategy := range []DateStrategy{DateDirect, DateDayFirst} {
		for _, in := range inputs {
			first, err := NormalizeDate(strategy, in)
			if err != nil {
				continue
			}
			second, err := NormalizeDate(strategy, first.Format("2006-01-02"))
			if err != nil {
				t.Fatalf("%s renormalize %q: %v", strategy, in, err)
			}
			if !second.Equal(first) {
				t.Fatalf("%s %q: got=%s want=%s", strategy, in, second, first)
			}
		}
	}
}

func TestDirectParserEnforcesFirstLayout(t *testing.T) {
	p := newDateParser(DateDirect)
	if _, err := p.Parse("2024-01-15 10:00:00"); err != nil {
		t.Fatalf("first value: %v", err)
	}
	if _, err := p.Parse("2024-01-16 11:30:00"); err != nil {
		t.Fatalf("same layout: %v", err)
	}
	if _, err := p.Parse("16/01/2024"); err == nil {
		t.Fatalf("expected error for a different layout")
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "yesterday", "32/13/2024", "99999999"} {
		if _, err := NormalizeDate(DateDayFirst, in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}
