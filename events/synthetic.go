package events

import "github.com/GhostKellz/ripple/host"

// SyntheticEvent is the mutable event record handlers receive. The same
// instance travels the whole propagation path; CurrentTarget is rewritten
// per node.
type SyntheticEvent struct {
	Type          string
	Target        host.NodeID
	CurrentTarget host.NodeID
	Bubbles       bool

	Detail     string
	DetailData any

	defaultPrevented   bool
	propagationStopped bool
}

func (e *SyntheticEvent) PreventDefault() {
	e.defaultPrevented = true
}

func (e *SyntheticEvent) StopPropagation() {
	e.propagationStopped = true
}

func (e *SyntheticEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *SyntheticEvent) PropagationStopped() bool {
	return e.propagationStopped
}
