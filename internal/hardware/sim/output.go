package sim

import "sync"

// Output is a recording on/off signal implementing hardware.Output.
type Output struct {
	// name identifies the output in logs.
	name string
	// onChange is called after every level change.
	onChange func(name string, active bool)

	// mu protects the fields below.
	mu sync.Mutex
	// active is the current level.
	active bool
	// activations counts off-to-on transitions.
	activations int
}

// NewOutput creates an inactive output. onChange may be nil.
func NewOutput(name string, onChange func(name string, active bool)) *Output {
	return &Output{
		name:     name,
		onChange: onChange,
	}
}

// Set implements hardware.Output.
func (o *Output) Set(active bool) {
	o.mu.Lock()

	if o.active == active {
		o.mu.Unlock()

		return
	}

	o.active = active
	if active {
		o.activations++
	}

	o.mu.Unlock()

	if o.onChange != nil {
		o.onChange(o.name, active)
	}
}

// Active reports the current level.
func (o *Output) Active() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.active
}

// Activations returns how many times the output turned on.
func (o *Output) Activations() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.activations
}

// Name returns the output name.
func (o *Output) Name() string {
	return o.name
}
