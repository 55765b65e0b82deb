package schedule

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the only date format the timetables use: day, full month
// name, year (e.g. "21 July 2024"). Cells carry day and month only; the
// year comes from the caller's reference date.
const dateLayout = "2 January 2006"

// ResolveDate parses a cell's text into a concrete date by suffixing the
// reference date's year. The cells themselves never carry a year.
func ResolveDate(cellText string, today time.Time) (time.Time, error) {
	text := fmt.Sprintf("%s %d", strings.TrimSpace(cellText), today.Year())
	d, err := time.Parse(dateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, cellText)
	}
	return d, nil
}

// IsDateCell reports whether the cell's text resolves as a collection
// date. The same parse attempt that produces dates also serves as the
// date-anchor predicate.
func IsDateCell(cellText string, today time.Time) bool {
	_, err := ResolveDate(cellText, today)
	return err == nil
}
