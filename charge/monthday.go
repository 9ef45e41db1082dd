package charge

import (
	"fmt"
	"time"
)

// MonthDay is a day of the year without a year, used to anchor annual and
// monthly savings fees (feeOnMonthDay).
type MonthDay struct {
	Month time.Month
	Day   int
}

// NewMonthDay validates the pair against the longest possible month, so
// February 29 is accepted.
func NewMonthDay(month time.Month, day int) (MonthDay, error) {
	if month < time.January || month > time.December {
		return MonthDay{}, fmt.Errorf("%w: month %d", ErrInvalidMonthDay, month)
	}
	if day < 1 || day > daysIn(month) {
		return MonthDay{}, fmt.Errorf("%w: day %d of %s", ErrInvalidMonthDay, day, month)
	}
	return MonthDay{Month: month, Day: day}, nil
}

// String renders the ISO-8601 form --MM-DD.
func (md MonthDay) String() string {
	return fmt.Sprintf("--%02d-%02d", int(md.Month), md.Day)
}

// In returns the date of this month-day in the given year. Feb 29 falls back
// to Feb 28 in non-leap years.
func (md MonthDay) In(year int) time.Time {
	day := md.Day
	if md.Month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, md.Month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(month time.Month) int {
	// 2024 is a leap year
	return time.Date(2024, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() == 366
}
