package stopwatch

// TickResult describes what a single tick did.
type TickResult struct {
	// Time is the clock value after the tick.
	Time Time
	// ReachedZero is set in countdown mode when the tick landed on, or found
	// the clock already at, 00:00:00.
	ReachedZero bool
}

// ApplyTick advances t by one unit of time according to mode.
func ApplyTick(t Time, mode Mode) TickResult {
	if mode == ModeIncrement {
		return TickResult{Time: t.Increment()}
	}

	next, moved := t.Decrement()

	return TickResult{
		Time:        next,
		ReachedZero: !moved || next.IsZero(),
	}
}

// Field names one of the three adjustable place-value fields.
type Field uint8

const (
	// FieldHours is the hours field.
	FieldHours Field = iota
	// FieldMinutes is the minutes field.
	FieldMinutes
	// FieldSeconds is the seconds field.
	FieldSeconds
)

// String returns the lowercase field name.
func (f Field) String() string {
	switch f {
	case FieldHours:
		return "hours"
	case FieldMinutes:
		return "minutes"
	case FieldSeconds:
		return "seconds"
	default:
		return "unknown"
	}
}

// Adjust steps one field up (up=true) or down by one without carrying.
// Adjustments past the field bounds are rejected: the time is returned
// unchanged and the second value is false.
func Adjust(t Time, field Field, up bool) (Time, bool) {
	var (
		value *uint8
		limit uint8
	)

	switch field {
	case FieldHours:
		value, limit = &t.Hours, MaxHours
	case FieldMinutes:
		value, limit = &t.Minutes, MaxMinutes
	case FieldSeconds:
		value, limit = &t.Seconds, MaxSeconds
	default:
		return t, false
	}

	switch {
	case up && *value < limit:
		*value++
	case !up && *value > 0:
		*value--
	default:
		return t, false
	}

	return t, true
}
