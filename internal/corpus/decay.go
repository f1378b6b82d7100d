package corpus

import (
	"math"
	"time"
)

// DaysSinceEpoch is an approximate day counter: 365 days a year, one leap day
// every four years and 30-day months. Ages are differences of this counter and
// TodayDays, so they may be off by a few days.
func DaysSinceEpoch(year, month, day int) int {
	return (year-1970)*365 + (year-1969)/4 + (month-1)*30 + day
}

// TodayDays returns the number of whole days between the Unix epoch and now.
func TodayDays(now time.Time) int {
	return int(now.Unix() / 86400)
}

// Decay converts record age into a contribution weight.
type Decay struct {
	// HalfLife is the number of days after which a record's weight halves.
	HalfLife float64

	// MaxAge is the oldest age, in days, a record may have and still count.
	MaxAge int

	// Weighted enables exponential decay. When false every record within
	// MaxAge weighs 1.0.
	Weighted bool
}

// TooOld reports whether a record of the given age is past the cutoff.
func (d Decay) TooOld(age int) bool {
	return age > d.MaxAge
}

// Weight returns 2^(-age/half_life), or 1.0 when weighting is disabled.
func (d Decay) Weight(age int) float64 {
	if !d.Weighted {
		return 1.0
	}
	return math.Pow(2, -float64(age)/d.HalfLife)
}
