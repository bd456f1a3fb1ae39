//go:build tinygo && rp2040

// Command stopwatch-firmware runs the stopwatch on an RP2040 board.
package main

import (
	"context"
	"machine"
	"time"

	"tinygo.org/x/drivers/buzzer"

	"github.com/oshokin/stopwatch/internal/hardware"
	core "github.com/oshokin/stopwatch/internal/service/machine"
)

// drainInterval is how often control events latched by interrupts are applied.
const drainInterval = time.Millisecond

func main() {
	ctx := context.Background()

	configurePins()

	bz := buzzer.New(buzzerPin)

	m, err := core.New(core.Drivers{
		Input:   pinInput{},
		Display: pinDisplay{},
		Alarm: hardware.OutputFunc(func(active bool) {
			if active {
				_ = bz.On()
			} else {
				_ = bz.Off()
			}
		}),
		IncrementLED: hardware.OutputFunc(incrementLEDPin.Set),
		CountdownLED: hardware.OutputFunc(countdownLEDPin.Set),
	}, core.Options{})
	if err != nil {
		panic(err)
	}

	var latch hardware.ControlLatch

	for _, button := range []hardware.Button{hardware.ButtonReset, hardware.ButtonPause, hardware.ButtonResume} {
		event, _ := button.ControlEvent()

		err = buttonPins[button].SetInterrupt(machine.PinFalling, func(machine.Pin) {
			latch.Raise(event)
		})
		if err != nil {
			panic(err)
		}
	}

	go func() {
		for {
			if events := latch.Drain(); len(events) > 0 {
				m.Signal(ctx, events...)
			}

			time.Sleep(drainInterval)
		}
	}()

	_ = m.Run(ctx)
}
