package machine

import (
	"time"

	"github.com/oshokin/stopwatch/internal/hardware"
)

// scanner debounces the mode button and the six adjustment buttons.
// It is only touched by the foreground loop.
type scanner struct {
	// input is the button source.
	input hardware.Input
	// mode debounces the mode toggle button.
	mode *hardware.Debouncer
	// adjust debounces the adjustment buttons in hardware.AdjustmentScanOrder.
	adjust [len(hardware.AdjustmentScanOrder)]*hardware.Debouncer
}

func newScanner(input hardware.Input, settle time.Duration) *scanner {
	s := &scanner{
		input: input,
		mode:  hardware.NewDebouncer(settle),
	}

	for i := range s.adjust {
		s.adjust[i] = hardware.NewDebouncer(settle)
	}

	return s
}

// modePressed reports a confirmed mode button press.
func (s *scanner) modePressed(now time.Time) bool {
	return s.mode.Update(s.input.Pressed(hardware.ButtonMode), now)
}

// adjustments returns the adjustments confirmed by this pass, in scan order.
func (s *scanner) adjustments(now time.Time) []hardware.Adjustment {
	var confirmed []hardware.Adjustment

	for i, adj := range hardware.AdjustmentScanOrder {
		if s.adjust[i].Update(s.input.Pressed(adj.Button), now) {
			confirmed = append(confirmed, adj)
		}
	}

	return confirmed
}

// resetAdjustments drops any adjustment press in progress.
func (s *scanner) resetAdjustments() {
	for _, d := range s.adjust {
		d.Reset()
	}
}
