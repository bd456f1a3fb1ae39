package stopwatch

import "fmt"

// Actor identifies who pressed a remote panel button.
type Actor struct {
	// Hostname is the machine the press came from.
	Hostname string
	// Username is the system user who pressed.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String formats the actor as user@host.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return fmt.Sprintf("%s@%s", a.Username, a.Hostname)
}
