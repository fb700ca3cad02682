// Package display drives the TV screen rotation. The rotation is an
// explicit finite state machine: one transition function serves both the
// dwell timer and manual navigation, so forward/back/jump all move through
// the same table instead of duplicated branch logic.
package display

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PhaseKind names the screen families in the rotation.
type PhaseKind string

const (
	PhaseSpotlight PhaseKind = "spotlight"
	PhaseBest      PhaseKind = "best"
	PhaseGrid      PhaseKind = "grid"
	PhaseWorst     PhaseKind = "worst"
	PhaseSupport   PhaseKind = "support"
)

// Dwell durations per phase kind.
const (
	spotlightDwell = 6 * time.Second
	gridDwell      = 8 * time.Second
	contentDwell   = 8 * time.Second
)

// Phase is one concrete screen: a kind plus an index within that kind
// (spotlight number, grid page, support slot).
type Phase struct {
	Kind  PhaseKind `json:"kind"`
	Index int       `json:"index"`
}

// Dwell returns how long this phase stays on screen before auto-advancing.
func (p Phase) Dwell() time.Duration {
	switch p.Kind {
	case PhaseSpotlight, PhaseSupport:
		return spotlightDwell
	case PhaseGrid:
		return gridDwell
	default:
		return contentDwell
	}
}

// Input is one FSM input symbol.
type Input int

const (
	// InputAdvance is the dwell timer firing. Ignored while held.
	InputAdvance Input = iota
	// InputNext is manual forward navigation. Always honored.
	InputNext
	// InputBack is manual backward navigation. Always honored.
	InputBack
)

// Machine is the phase state machine. The full rotation is flattened into
// an ordered sequence at construction; the transition table maps
// (position, input) to the next position with wrap-around at both ends.
type Machine struct {
	sequence []Phase
	pos      int
}

// NewMachine builds the rotation: spotlights brand spotlights, then the
// best-content screen, gridPages grid pages, the worst-content screen, and
// supportSlots closing support spotlights. Counts below 0 are treated as 0;
// a rotation needs at least one phase, so an all-zero machine still carries
// the best and worst screens.
func NewMachine(spotlights, gridPages, supportSlots int) *Machine {
	var seq []Phase
	for i := 0; i < spotlights; i++ {
		seq = append(seq, Phase{Kind: PhaseSpotlight, Index: i})
	}
	seq = append(seq, Phase{Kind: PhaseBest})
	for i := 0; i < gridPages; i++ {
		seq = append(seq, Phase{Kind: PhaseGrid, Index: i})
	}
	seq = append(seq, Phase{Kind: PhaseWorst})
	for i := 0; i < supportSlots; i++ {
		seq = append(seq, Phase{Kind: PhaseSupport, Index: i})
	}
	return &Machine{sequence: seq}
}

// Current returns the active phase.
func (m *Machine) Current() Phase {
	return m.sequence[m.pos]
}

// Len returns the rotation length.
func (m *Machine) Len() int {
	return len(m.sequence)
}

// Transition applies one input and returns the new phase. This is the
// single transition function for both automatic and manual movement.
func (m *Machine) Transition(input Input) Phase {
	switch input {
	case InputAdvance, InputNext:
		m.pos = (m.pos + 1) % len(m.sequence)
	case InputBack:
		m.pos = (m.pos - 1 + len(m.sequence)) % len(m.sequence)
	}
	return m.Current()
}

// Select jumps directly to the first phase matching kind and index.
// Unknown phases leave the machine where it is.
func (m *Machine) Select(kind PhaseKind, index int) (Phase, bool) {
	for i, p := range m.sequence {
		if p.Kind == kind && p.Index == index {
			m.pos = i
			return p, true
		}
	}
	return m.Current(), false
}

// Hold captures the conditions that suspend auto-advance. Manual
// navigation stays available regardless.
type Hold struct {
	OverlayOpen  bool `json:"overlayOpen"`
	FilterActive bool `json:"filterActive"`
	SearchFocus  bool `json:"searchFocus"`
}

// Any reports whether any hold condition is set.
func (h Hold) Any() bool {
	return h.OverlayOpen || h.FilterActive || h.SearchFocus
}

// Controller runs a Machine on its dwell timers. All waits are timer-based
// and cancellable; Stop disposes the pending timer.
type Controller struct {
	mu      sync.Mutex
	machine *Machine
	hold    Hold
	timer   *time.Timer
	stopped bool
}

// State is a snapshot of the controller for the presentation layer.
type State struct {
	Phase       Phase         `json:"phase"`
	Dwell       time.Duration `json:"-"`
	DwellMillis int64         `json:"dwellMs"`
	Hold        Hold          `json:"hold"`
	AutoAdvance bool          `json:"autoAdvance"`
	Length      int           `json:"length"`
}

// NewController wraps a machine and starts its dwell timer.
func NewController(machine *Machine) *Controller {
	c := &Controller{machine: machine}
	c.timer = time.AfterFunc(machine.Current().Dwell(), c.tick)
	return c
}

func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	if c.hold.Any() {
		// Holds suspend advancement, not the clock: re-check after the
		// current phase's dwell.
		c.timer.Reset(c.machine.Current().Dwell())
		return
	}

	phase := c.machine.Transition(InputAdvance)
	logrus.Debugf("Display auto-advanced to %s[%d]", phase.Kind, phase.Index)
	c.timer.Reset(phase.Dwell())
}

// apply moves the machine manually and restarts the dwell timer from the
// new phase.
func (c *Controller) apply(input Input) Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	phase := c.machine.Transition(input)
	if !c.stopped {
		c.timer.Reset(phase.Dwell())
	}
	return phase
}

// Next advances one phase manually.
func (c *Controller) Next() Phase {
	return c.apply(InputNext)
}

// Back moves one phase backward manually.
func (c *Controller) Back() Phase {
	return c.apply(InputBack)
}

// Select jumps to a specific phase.
func (c *Controller) Select(kind PhaseKind, index int) (Phase, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	phase, ok := c.machine.Select(kind, index)
	if ok && !c.stopped {
		c.timer.Reset(phase.Dwell())
	}
	return phase, ok
}

// SetHold replaces the hold conditions.
func (c *Controller) SetHold(hold Hold) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hold = hold
}

// State returns a snapshot of the current phase and hold status.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	phase := c.machine.Current()
	return State{
		Phase:       phase,
		Dwell:       phase.Dwell(),
		DwellMillis: phase.Dwell().Milliseconds(),
		Hold:        c.hold,
		AutoAdvance: !c.hold.Any(),
		Length:      c.machine.Len(),
	}
}

// Stop cancels the dwell timer. The controller cannot be restarted.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.timer.Stop()
}
