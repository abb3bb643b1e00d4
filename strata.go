// Package strata provides a hierarchical state machine runtime for Go.
// States form a tree, messages are dispatched by their runtime type to the
// current state or the nearest ancestor that subscribes to them, and
// reminders deliver time-delayed self-messages scoped to a state's active
// lifetime.
//
// A machine is driven cooperatively: any goroutine may Push messages, while
// exactly one goroutine, the one that constructed the machine, calls Tick in
// a loop. Each tick advances reminders and drains every queued transition
// before dispatching at most one message.
//
// Concrete states embed Base and override the lifecycle hooks they care
// about:
//
//	type Idle struct {
//		strata.Base
//	}
//
//	func NewIdle() *Idle {
//		s := &Idle{}
//		s.Subscribe(strata.For[StartMsg](), s.onStart)
//		return s
//	}
//
//	func (s *Idle) onStart(msg strata.Message) bool {
//		s.RequestTransition(strata.For[*Running]())
//		return true
//	}
package strata
