//go:build tinygo && rp2040

package main

import (
	"machine"
	"time"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
)

// Board wiring. Buttons pull their line low when pressed.
//
//nolint:gochecknoglobals // Fixed wiring table.
var (
	buttonPins = map[hardware.Button]machine.Pin{
		hardware.ButtonReset:       machine.GPIO2,
		hardware.ButtonPause:       machine.GPIO3,
		hardware.ButtonResume:      machine.GPIO4,
		hardware.ButtonMode:        machine.GPIO5,
		hardware.ButtonHoursDown:   machine.GPIO6,
		hardware.ButtonHoursUp:     machine.GPIO7,
		hardware.ButtonMinutesDown: machine.GPIO8,
		hardware.ButtonMinutesUp:   machine.GPIO9,
		hardware.ButtonSecondsDown: machine.GPIO10,
		hardware.ButtonSecondsUp:   machine.GPIO11,
	}

	// bcdPins drive the BCD-to-7-segment decoder, least significant bit first.
	bcdPins = [4]machine.Pin{machine.GPIO12, machine.GPIO13, machine.GPIO14, machine.GPIO15}

	// enablePins switch the common line of each digit, position 0 first.
	enablePins = [stopwatch.DigitCount]machine.Pin{
		machine.GPIO16, machine.GPIO17, machine.GPIO18,
		machine.GPIO19, machine.GPIO20, machine.GPIO21,
	}

	buzzerPin       = machine.GPIO22
	incrementLEDPin = machine.GPIO26
	countdownLEDPin = machine.GPIO27
)

// digitDwell keeps each digit lit long enough to avoid flicker.
const digitDwell = 2 * time.Millisecond

// pinInput reads active-low buttons.
type pinInput struct{}

func (pinInput) Pressed(b hardware.Button) bool {
	pin, ok := buttonPins[b]
	if !ok {
		return false
	}

	return !pin.Get()
}

// pinDisplay multiplexes one BCD bus across six digit enables.
type pinDisplay struct{}

func (pinDisplay) ShowDigit(position int, value uint8) {
	if position < 0 || position >= stopwatch.DigitCount || value > 9 {
		return
	}

	for _, pin := range enablePins {
		pin.Low()
	}

	for bit, pin := range bcdPins {
		pin.Set(value&(1<<bit) != 0)
	}

	enablePins[position].High()
	time.Sleep(digitDwell)
}

// configurePins sets every line to its direction and idle level.
func configurePins() {
	for _, pin := range buttonPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	outputs := append(bcdPins[:], enablePins[:]...)
	outputs = append(outputs, buzzerPin, incrementLEDPin, countdownLEDPin)

	for _, pin := range outputs {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}
}
