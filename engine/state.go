package engine

import (
	"fmt"

	"github.com/gogpu/girih/event"
)

// State counts the prototypes a coordinator holds.
type State int

const (
	// StateEmpty means there is nothing to draw.
	StateEmpty State = iota
	// StateSingle means exactly one non-empty prototype.
	StateSingle
	// StateMulti means more than one prototype.
	StateMulti
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateSingle:
		return "SINGLE"
	case StateMulti:
		return "MULTI"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result is what a coordinator hands to the next stage.
type Result struct {
	// Forward is the event for the next coordinator. Its Prototypes
	// field lists the prototypes the edit touched.
	Forward event.Event
	// Changed reports whether the coordinator's state moved.
	Changed bool
}
