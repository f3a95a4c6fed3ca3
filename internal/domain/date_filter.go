package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
)

type DatePreset string

const (
	DateAll       DatePreset = "all"
	DateToday     DatePreset = "today"
	DateYesterday DatePreset = "yesterday"
	DateLast7     DatePreset = "last7"
	DateLast30    DatePreset = "last30"
	DateThisMonth DatePreset = "thisMonth"
	DatePrevMonth DatePreset = "prevMonth"
)

var datePresets = map[string]DatePreset{
	"":          DateAll,
	"all":       DateAll,
	"today":     DateToday,
	"yesterday": DateYesterday,
	"last7":     DateLast7,
	"last30":    DateLast30,
	"thismonth": DateThisMonth,
	"prevmonth": DatePrevMonth,
}

func ParseDatePreset(s string) (DatePreset, error) {
	p, ok := datePresets[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", apperr.NewValidation(fmt.Sprintf("unsupported dateFilter %q", s))
	}
	return p, nil
}

// DateRange is the half-open interval [From, To).
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// ResolveDateRange turns a preset or month into a range relative to local
// midnight of now. A month in 1..12 overrides the preset and selects that month
// of the current year. A nil range means no constraint.
func ResolveDateRange(preset DatePreset, month int, now time.Time) (*DateRange, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	if month != 0 {
		if month < 1 || month > 12 {
			return nil, apperr.NewValidation(fmt.Sprintf("month must be between 1 and 12, got %d", month))
		}
		from := time.Date(now.Year(), time.Month(month), 1, 0, 0, 0, 0, loc)
		return &DateRange{From: from, To: from.AddDate(0, 1, 0)}, nil
	}

	switch preset {
	case DateAll, "":
		return nil, nil
	case DateToday:
		return &DateRange{From: today, To: tomorrow}, nil
	case DateYesterday:
		return &DateRange{From: today.AddDate(0, 0, -1), To: today}, nil
	case DateLast7:
		return &DateRange{From: today.AddDate(0, 0, -7), To: tomorrow}, nil
	case DateLast30:
		return &DateRange{From: today.AddDate(0, 0, -30), To: tomorrow}, nil
	case DateThisMonth:
		return &DateRange{From: firstOfMonth, To: firstOfMonth.AddDate(0, 1, 0)}, nil
	case DatePrevMonth:
		return &DateRange{From: firstOfMonth.AddDate(0, -1, 0), To: firstOfMonth}, nil
	default:
		return nil, apperr.NewValidation(fmt.Sprintf("unsupported dateFilter %q", preset))
	}
}
