// Package format renders timestamps and durations for tabular output.
package format

import (
	"strings"
	"time"
)

// Layout holds the date and clock preferences used when printing times.
// The zero value prints "2006-01-02 15:04:05".
type Layout struct {
	// Date is a preset ("yyyy-mm-dd", "dd/mm/yyyy", "mm/dd/yyyy") or a Go
	// time layout such as "Jan 02".
	Date string
	// Clock is "24h" or "12h".
	Clock string
}

// DateTime formats t with both date and time, seconds included.
// Example output: "2024-01-23 15:04:05" or "01/23/2024 3:04:05 PM"
func (l Layout) DateTime(t time.Time) string {
	return l.FormatDate(t) + " " + l.FormatTime(t)
}

// DateTimeShort formats t with a date without year and a time without seconds.
// Example output: "01-23 15:04" or "23/01 3:04 PM"
func (l Layout) DateTimeShort(t time.Time) string {
	return t.Format(l.shortDateLayout()) + " " + t.Format(l.shortTimeLayout())
}

// FormatDate formats only the date portion.
func (l Layout) FormatDate(t time.Time) string {
	return t.Format(l.dateLayout())
}

// FormatTime formats only the time portion, with seconds.
func (l Layout) FormatTime(t time.Time) string {
	return t.Format(l.timeLayout())
}

func (l Layout) dateLayout() string {
	switch l.Date {
	case "", "yyyy-mm-dd":
		return "2006-01-02"
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		return l.Date
	}
}

func (l Layout) shortDateLayout() string {
	switch l.Date {
	case "", "yyyy-mm-dd":
		return "01-02"
	case "mm/dd/yyyy":
		return "01/02"
	case "dd/mm/yyyy":
		return "02/01"
	default:
		short := l.Date
		for _, year := range []string{"2006", "/06", "-06", " 06"} {
			short = strings.ReplaceAll(short, year, "")
		}
		short = strings.Trim(strings.TrimSpace(short), "/-")
		if short == "" {
			return "Jan 02"
		}
		return short
	}
}

func (l Layout) timeLayout() string {
	if l.Clock == "12h" {
		return "3:04:05 PM"
	}
	return "15:04:05"
}

func (l Layout) shortTimeLayout() string {
	if l.Clock == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// Duration renders d rounded for humans: "850ms", "2.4s", "3m12s".
func Duration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
