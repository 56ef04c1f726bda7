package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ROCYearOffset is the difference between a Gregorian year and a Republic of China (民國) year.
const ROCYearOffset = 1911

// DaysPerYear absorbs leap years when turning a duration into years.
const DaysPerYear = 365.25

// ErrInvalidDate is returned when a local-calendar date cannot be converted.
var ErrInvalidDate = errors.New("invalid ROC date")

// ROCToGregorian converts an ROC year/month/day into midnight of that Gregorian date in loc.
// Impossible dates such as 110/02/30 are rejected rather than normalized.
func ROCToGregorian(rocYear, month, day int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %d/%d/%d out of range", ErrInvalidDate, rocYear, month, day)
	}
	if loc == nil {
		loc = time.Local
	}

	year := rocYear + ROCYearOffset
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %d/%d/%d does not exist", ErrInvalidDate, rocYear, month, day)
	}
	return date, nil
}

// ParseROCDate converts numeric year, month and day strings.
func ParseROCDate(yearStr, monthStr, dayStr string, loc *time.Location) (time.Time, error) {
	parts := [3]int{}
	for i, s := range []string{yearStr, monthStr, dayStr} {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not a number", ErrInvalidDate, s)
		}
		parts[i] = v
	}
	return ROCToGregorian(parts[0], parts[1], parts[2], loc)
}

// SplitROCDate splits "110/2/28", "110-02-28" or "110.02.28" into its components.
func SplitROCDate(s string) (year, month, day string, err error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(fields) != 3 {
		return "", "", "", fmt.Errorf("%w: %q must look like YYY/MM/DD", ErrInvalidDate, s)
	}
	return fields[0], fields[1], fields[2], nil
}

// GregorianToROC reverses ROCToGregorian.
func GregorianToROC(t time.Time) (rocYear, month, day int) {
	return t.Year() - ROCYearOffset, int(t.Month()), t.Day()
}

// YearsBetween returns the elapsed time in years using a 365.25-day year.
// The result is negative when to is before from.
func YearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / DaysPerYear
}

// DaysInMonth returns the number of days in a Gregorian month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
