// Package pricing computes the cost of a stay.
package pricing

import (
	"time"

	"hotel/shared/constant"
)

// Quote is the priced breakdown of a stay.
type Quote struct {
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Nights      int       `json:"nights"`
	NightlyRate float64   `json:"nightly_rate"`
	TotalPrice  float64   `json:"total_price"`
}

// Nights is the whole-day difference between checkOut and checkIn, truncated
// toward zero. It is zero or negative when checkOut is not after checkIn.
// Days are counted on the wall clock of checkIn's location, so a stay across
// a daylight saving change still counts calendar nights.
func Nights(checkIn, checkOut time.Time) int {
	from := wallClock(checkIn)
	to := wallClock(checkOut.In(checkIn.Location()))

	return int(to.Sub(from).Hours() / constant.HoursPerDay)
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ComputeTotalPrice returns Nights × nightlyRate. Inputs are not validated;
// callers must make sure checkOut is after checkIn.
func ComputeTotalPrice(checkIn, checkOut time.Time, nightlyRate float64) float64 {
	return float64(Nights(checkIn, checkOut)) * nightlyRate
}

func NewQuote(checkIn, checkOut time.Time, nightlyRate float64) Quote {
	return Quote{
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Nights:      Nights(checkIn, checkOut),
		NightlyRate: nightlyRate,
		TotalPrice:  ComputeTotalPrice(checkIn, checkOut, nightlyRate),
	}
}
