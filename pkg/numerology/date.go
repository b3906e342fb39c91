package numerology

import (
	"fmt"
	"math"
	"time"
)

// maxYear keeps day+month+year representable as an int.
const maxYear = math.MaxInt - 31 - 12

// BirthDate is a calendar date in the proleptic Gregorian calendar.
type BirthDate struct {
	Day   int
	Month int
	Year  int
}

// Total returns day+month+year without any reduction.
func (d BirthDate) Total() int {
	return d.Day + d.Month + d.Year
}

// DateError reports a day/month/year triple that is not a real calendar date.
type DateError struct {
	Day   int
	Month int
	Year  int
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date: %d/%d/%d", e.Day, e.Month, e.Year)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysIn returns the number of days in month of year.
func daysIn(month, year int) int {
	switch time.Month(month) {
	case time.February:
		if isLeap(year) {
			return 29
		}

		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// ValidateDate checks that day/month/year names a real date. Years start at 1;
// there is no upper bound other than integer range.
func ValidateDate(day, month, year int) error {
	if year < 1 || year > maxYear || month < 1 || month > 12 || day < 1 || day > daysIn(month, year) {
		return &DateError{Day: day, Month: month, Year: year}
	}

	return nil
}

// NewBirthDate validates the triple and returns it as a BirthDate.
func NewBirthDate(day, month, year int) (BirthDate, error) {
	if err := ValidateDate(day, month, year); err != nil {
		return BirthDate{}, err
	}

	return BirthDate{Day: day, Month: month, Year: year}, nil
}
