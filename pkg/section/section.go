// Package section tracks which whitepaper section the reader is looking at.
//
// Each section anchor reports its own visibility independently. The current
// section is the first visible one in document order; when nothing is
// visible the previous value is kept.
package section

import "fmt"

// ID names a logical section of the whitepaper.
type ID string

const (
	Hero       ID = "hero"
	Problem    ID = "problem"
	Solution   ID = "solution"
	Process    ID = "process"
	Tokenomics ID = "tokenomics"
	Webapp     ID = "webapp"
	Team       ID = "team"
	Roadmap    ID = "roadmap"
)

// Order is the document order and the tie-break priority.
var Order = []ID{Hero, Problem, Solution, Process, Tokenomics, Webapp, Team, Roadmap}

// DefaultThreshold is the fraction of an anchor that must be on screen.
const DefaultThreshold = 0.5

// ParseID validates a section id.
func ParseID(s string) (ID, error) {
	for _, id := range Order {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Index returns the position of id in Order, or -1.
func Index(id ID) int {
	for i, o := range Order {
		if o == id {
			return i
		}
	}
	return -1
}

// Visibility maps each observed anchor to whether it passes the threshold.
type Visibility map[ID]bool

// Resolve returns the first visible section in Order, or current when none is visible.
func Resolve(current ID, vis Visibility) ID {
	for _, id := range Order {
		if vis[id] {
			return id
		}
	}
	return current
}

// Event is one anchor's visibility report.
type Event struct {
	Section ID
	Visible bool
}

// State is the reducer state.
type State struct {
	Current ID
	Visible Visibility
}

// NewState starts at the first section with nothing visible.
func NewState() State {
	return State{Current: Order[0], Visible: Visibility{}}
}

// Reduce applies e to s. The input state is not modified.
func Reduce(s State, e Event) State {
	vis := make(Visibility, len(s.Visible)+1)
	for k, v := range s.Visible {
		vis[k] = v
	}
	vis[e.Section] = e.Visible
	return State{Current: Resolve(s.Current, vis), Visible: vis}
}
