// Package corpus selects and decodes the per-tournament decklist records.
package corpus

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// datePathPattern matches the /YYYY/MM/DD/ segment the corpus stores records under.
var datePathPattern = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)

// Date is the calendar triple derived from a record's storage path.
// No calendar validation is applied: month 13 or day 40 are kept as-is.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String returns the zero-padded YYYY-MM-DD form. Lexicographic order of this
// form is chronological order.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Days returns the approximate day counter used for aging.
func (d Date) Days() int {
	return DaysSinceEpoch(d.Year, d.Month, d.Day)
}

// DateFromPath extracts the first /YYYY/MM/DD/ segment of path.
// The boolean is false when the path carries no such segment.
func DateFromPath(path string) (Date, bool) {
	m := datePathPattern.FindStringSubmatch(filepath.ToSlash(path))
	if m == nil {
		return Date{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	return Date{Year: year, Month: month, Day: day}, true
}
