package stopwatch

import "fmt"

const (
	// MaxHours is the largest hours value a Time can hold.
	MaxHours = 23
	// MaxMinutes is the largest minutes value a Time can hold.
	MaxMinutes = 59
	// MaxSeconds is the largest seconds value a Time can hold.
	MaxSeconds = 59

	// DigitCount is the number of display positions a Time decomposes into.
	DigitCount = 6
)

// Time is a normalized hours:minutes:seconds clock value.
// The zero value is 00:00:00.
type Time struct {
	// Hours is in the range 0..23.
	Hours uint8
	// Minutes is in the range 0..59.
	Minutes uint8
	// Seconds is in the range 0..59.
	Seconds uint8
}

// Digits holds the decimal digits of a Time in display position order:
// seconds-ones, seconds-tens, minutes-ones, minutes-tens, hours-ones, hours-tens.
type Digits [DigitCount]uint8

// NewTime builds a Time, normalizing the fields into their ranges.
func NewTime(hours, minutes, seconds int) Time {
	total := hours*secondsPerHour + minutes*secondsPerMinute + seconds

	return FromTotalSeconds(total)
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// FromTotalSeconds converts a second count into a Time, wrapping at 24 hours.
func FromTotalSeconds(total int) Time {
	total %= secondsPerDay
	if total < 0 {
		total += secondsPerDay
	}

	return Time{
		Hours:   uint8(total / secondsPerHour),
		Minutes: uint8(total % secondsPerHour / secondsPerMinute),
		Seconds: uint8(total % secondsPerMinute),
	}
}

// TotalSeconds returns the number of seconds since 00:00:00.
func (t Time) TotalSeconds() int {
	return int(t.Hours)*secondsPerHour + int(t.Minutes)*secondsPerMinute + int(t.Seconds)
}

// IsZero reports whether the time is 00:00:00.
func (t Time) IsZero() bool {
	return t == Time{}
}

// Valid reports whether every field is within its range.
func (t Time) Valid() bool {
	return t.Hours <= MaxHours && t.Minutes <= MaxMinutes && t.Seconds <= MaxSeconds
}

// Digits decomposes the time into display digits.
func (t Time) Digits() Digits {
	return Digits{
		t.Seconds % 10,
		t.Seconds / 10,
		t.Minutes % 10,
		t.Minutes / 10,
		t.Hours % 10,
		t.Hours / 10,
	}
}

// String renders the time as HH:MM:SS.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// Increment advances the time by one second.
// Seconds carry into minutes, minutes into hours, and hours wrap 23 -> 0.
func (t Time) Increment() Time {
	t.Seconds++
	if t.Seconds <= MaxSeconds {
		return t
	}

	t.Seconds = 0
	t.Minutes++

	if t.Minutes <= MaxMinutes {
		return t
	}

	t.Minutes = 0
	t.Hours++

	if t.Hours > MaxHours {
		t.Hours = 0
	}

	return t
}

// Decrement moves the time back by one second, borrowing from minutes and
// hours. The second return value is false when t is already 00:00:00, in
// which case t is returned unchanged.
func (t Time) Decrement() (Time, bool) {
	switch {
	case t.Seconds > 0:
		t.Seconds--
	case t.Minutes > 0:
		t.Minutes--
		t.Seconds = MaxSeconds
	case t.Hours > 0:
		t.Hours--
		t.Minutes = MaxMinutes
		t.Seconds = MaxSeconds
	default:
		return t, false
	}

	return t, true
}
