package protocol

import (
	"slices"

	"github.com/philipparndt/gohip/pkg/geometry"
)

// State is the coarse state of the capture state machine
type State int

const (
	// Idle means no image is loaded
	Idle State = iota
	// Active means a step is waiting for points
	Active
	// Complete means every step holds all of its points
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Protocol is an immutable snapshot of the capture protocol: the steps
// with their captured points and the active-step cursor.
//
// Every transition returns a new snapshot. Untouched steps share their
// point slices with the previous snapshot; those slices are never written
// to after creation.
type Protocol struct {
	config *Config
	steps  []Step
	active StepID
}

// New returns an idle protocol for cfg
func New(cfg *Config) Protocol {
	return Protocol{
		config: cfg,
		steps:  cfg.steps,
		active: IdleStep,
	}
}

// Config returns the template the protocol was created from
func (p Protocol) Config() *Config {
	return p.config
}

// Active returns the active step id. It is IdleStep before an image is
// loaded and Len()+1 once every step is complete.
func (p Protocol) Active() StepID {
	return p.active
}

// Len returns the number of steps
func (p Protocol) Len() int {
	return len(p.steps)
}

// State returns the state derived from the cursor position
func (p Protocol) State() State {
	switch {
	case p.active == IdleStep:
		return Idle
	case int(p.active) > len(p.steps):
		return Complete
	}
	return Active
}

// Complete reports whether the cursor moved past the last step
func (p Protocol) Complete() bool {
	return p.State() == Complete
}

// Step returns the step with the given id
func (p Protocol) Step(id StepID) (Step, bool) {
	if id < 1 || int(id) > len(p.steps) {
		return Step{}, false
	}
	return p.steps[id-1], true
}

// ActiveStep returns the step under the cursor, if any
func (p Protocol) ActiveStep() (Step, bool) {
	return p.Step(p.active)
}

// Steps returns all steps in order
func (p Protocol) Steps() []Step {
	return slices.Clone(p.steps)
}

// StepByRole returns the first step carrying role
func (p Protocol) StepByRole(role Role) (Step, bool) {
	for _, s := range p.steps {
		if s.Role == role {
			return s, true
		}
	}
	return Step{}, false
}

// StepsByRole returns every step carrying role, in order
func (p Protocol) StepsByRole(role Role) []Step {
	var steps []Step
	for _, s := range p.steps {
		if s.Role == role {
			steps = append(steps, s)
		}
	}
	return steps
}

// Parent resolves the parent of a step
func (p Protocol) Parent(s Step) (Step, bool) {
	if !s.HasParent() {
		return Step{}, false
	}
	return p.Step(s.Parent)
}

// Group returns the solver input of a step: the parent's points followed
// by the step's own points. The boolean is true when both the step and its
// parent are complete.
func (p Protocol) Group(id StepID) ([]geometry.Point, bool) {
	s, ok := p.Step(id)
	if !ok {
		return nil, false
	}
	if !s.HasParent() {
		return s.Points(), s.Complete()
	}
	parent, ok := p.Parent(s)
	if !ok {
		return s.Points(), false
	}
	group := append(parent.Points(), s.points...)
	return group, parent.Complete() && s.Complete()
}

// withStep returns a copy of the snapshot with one step replaced
func (p Protocol) withStep(s Step) Protocol {
	steps := slices.Clone(p.steps)
	steps[s.ID-1] = s
	p.steps = steps
	return p
}

// withActive returns a copy of the snapshot with the cursor moved
func (p Protocol) withActive(id StepID) Protocol {
	p.active = id
	return p
}
