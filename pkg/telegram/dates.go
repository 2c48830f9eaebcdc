package telegram

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// errInvalidDate marks malformed command dates so handlers can send a
// targeted format hint instead of a generic failure.
var errInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

// parseCommandDate parses strict YYYY-MM-DD command arguments. Unlike the
// expense grammar it rejects nominal dates such as 2025-02-30.
func parseCommandDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, errInvalidDate
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return time.Time{}, errInvalidDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, errInvalidDate
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, errInvalidDate
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, errInvalidDate
	}

	return date, nil
}

// dayEnd returns the last instant of d's calendar day, so clear ranges given
// as dates cover the whole end day.
func dayEnd(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999999, d.Location())
}
