package calendar

import "time"

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return ErrInvalidYear
	}
	return nil
}

func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// MonthRange returns the first and last calendar day of the month, both
// inclusive.
func MonthRange(year, month int) (Date, Date, error) {
	if err := ValidateYear(year); err != nil {
		return Date{}, Date{}, err
	}
	if err := ValidateMonth(month); err != nil {
		return Date{}, Date{}, err
	}
	m := time.Month(month)
	return NewDate(year, m, 1), NewDate(year, m, DaysInMonth(year, m)), nil
}

// MonthKey formats a month as YYYY-MM.
func MonthKey(year int, month time.Month) string {
	return NewDate(year, month, 1).t.Format("2006-01")
}
