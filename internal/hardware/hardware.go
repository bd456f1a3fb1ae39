package hardware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
)

// Button identifies one physical input.
type Button uint8

const (
	// ButtonReset zeroes the clock.
	ButtonReset Button = iota
	// ButtonPause stops counting.
	ButtonPause
	// ButtonResume restarts counting.
	ButtonResume
	// ButtonMode toggles between increment and countdown.
	ButtonMode
	// ButtonHoursDown decrements hours while paused.
	ButtonHoursDown
	// ButtonHoursUp increments hours while paused.
	ButtonHoursUp
	// ButtonMinutesDown decrements minutes while paused.
	ButtonMinutesDown
	// ButtonMinutesUp increments minutes while paused.
	ButtonMinutesUp
	// ButtonSecondsDown decrements seconds while paused.
	ButtonSecondsDown
	// ButtonSecondsUp increments seconds while paused.
	ButtonSecondsUp

	buttonCount
)

// ErrUnknownButton is returned when a button name cannot be parsed.
var ErrUnknownButton = errors.New("unknown button")

//nolint:gochecknoglobals // Fixed lookup table.
var buttonNames = [buttonCount]string{
	ButtonReset:       "reset",
	ButtonPause:       "pause",
	ButtonResume:      "resume",
	ButtonMode:        "mode",
	ButtonHoursDown:   "hours-down",
	ButtonHoursUp:     "hours-up",
	ButtonMinutesDown: "minutes-down",
	ButtonMinutesUp:   "minutes-up",
	ButtonSecondsDown: "seconds-down",
	ButtonSecondsUp:   "seconds-up",
}

// String returns the button name used on the command line and over the wire.
func (b Button) String() string {
	if b < buttonCount {
		return buttonNames[b]
	}

	return fmt.Sprintf("button(%d)", uint8(b))
}

// ParseButton converts a button name into a Button.
func ParseButton(s string) (Button, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")

	for i, candidate := range buttonNames {
		if candidate == name {
			return Button(i), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownButton)
}

// Buttons returns every button in declaration order.
func Buttons() []Button {
	all := make([]Button, 0, buttonCount)
	for b := range buttonCount {
		all = append(all, b)
	}

	return all
}

// Valid reports whether b is one of the panel buttons.
func (b Button) Valid() bool {
	return b < buttonCount
}

// ControlEvent maps the asynchronous control buttons to the event they raise.
func (b Button) ControlEvent() (stopwatch.Event, bool) {
	switch b {
	case ButtonReset:
		return stopwatch.EventReset, true
	case ButtonPause:
		return stopwatch.EventPause, true
	case ButtonResume:
		return stopwatch.EventResume, true
	default:
		return 0, false
	}
}

// Adjustment describes the time adjustment bound to an adjustment button.
type Adjustment struct {
	Button Button
	Field  stopwatch.Field
	Up     bool
}

// AdjustmentScanOrder is the order adjustment buttons are scanned in while paused.
//
//nolint:gochecknoglobals // Fixed scan table.
var AdjustmentScanOrder = [...]Adjustment{
	{Button: ButtonHoursDown, Field: stopwatch.FieldHours, Up: false},
	{Button: ButtonHoursUp, Field: stopwatch.FieldHours, Up: true},
	{Button: ButtonMinutesDown, Field: stopwatch.FieldMinutes, Up: false},
	{Button: ButtonMinutesUp, Field: stopwatch.FieldMinutes, Up: true},
	{Button: ButtonSecondsDown, Field: stopwatch.FieldSeconds, Up: false},
	{Button: ButtonSecondsUp, Field: stopwatch.FieldSeconds, Up: true},
}

// Input reads button levels. Pressed reports the logical pressed state; active-low
// wiring is inverted by the implementation.
type Input interface {
	Pressed(b Button) bool
}

// Display shows one decimal digit at one of the six positions.
// Position 0 is seconds-ones and position 5 is hours-tens.
type Display interface {
	ShowDigit(position int, value uint8)
}

// Output is a single on/off signal such as the buzzer or a mode LED.
type Output interface {
	Set(active bool)
}

// OutputFunc adapts a function to the Output interface.
type OutputFunc func(active bool)

// Set calls f(active).
func (f OutputFunc) Set(active bool) {
	f(active)
}
