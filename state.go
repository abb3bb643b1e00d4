package strata

// Handler processes one dispatched message and reports whether it handled
// it. Returning false lets the machine keep walking the ancestor chain.
type Handler func(msg Message) bool

// State is a node in the machine's state tree. Concrete states embed Base,
// which supplies the node plumbing and no-op lifecycle hooks; only types
// embedding Base can satisfy this interface.
type State interface {
	// Enter is invoked while the state becomes part of the active path
	// during a transition cascade.
	Enter()
	// Exit is invoked while the state leaves the active path. Reminders
	// owned by the state are cleared right after.
	Exit()
	// Arrive is invoked on the exact destination of a transition, never on
	// ancestors passed through by the enter cascade.
	Arrive()

	base() *Base
}

// Base is the embeddable state node. It holds the parent link, the
// subscription table, the reminder list, and the transition-request hook
// installed at registration time, and provides default no-op lifecycle
// hooks along with the operations shared by every state.
type Base struct {
	parent    Key
	handlers  map[Key]Handler
	catchAll  Handler
	reminders []*reminder
	requestFn func(target Key) error
}

func (b *Base) base() *Base { return b }

// Enter is a no-op; override it on the concrete state
func (b *Base) Enter() {}

// Exit is a no-op; override it on the concrete state
func (b *Base) Exit() {}

// Arrive is a no-op; override it on the concrete state
func (b *Base) Arrive() {}

// SetParent links this state under a parent identified by key. The link is
// resolved through the machine's registry at walk time, so parent and child
// may be registered in any order.
func (b *Base) SetParent(parent Key) {
	b.parent = parent
}

// Parent returns the parent key, or nil for a root state.
func (b *Base) Parent() Key {
	return b.parent
}

// Subscribe registers a handler for one message type. It fails with
// DuplicateSubscription when the type already has a handler on this state,
// and with MixedSubscriptionKind when the state already holds a catch-all
// subscription.
func (b *Base) Subscribe(key Key, h Handler) error {
	if b.catchAll != nil {
		return NewMixedSubscriptionKindError(keyName(key), "state already has a catch-all subscription")
	}
	if _, exists := b.handlers[key]; exists {
		return NewDuplicateSubscriptionError(keyName(key))
	}
	if b.handlers == nil {
		b.handlers = make(map[Key]Handler)
	}
	b.handlers[key] = h
	return nil
}

// SubscribeAll registers a catch-all handler receiving every message type.
// It fails with MixedSubscriptionKind when the state already holds specific
// subscriptions, and with DuplicateSubscription when a catch-all is already
// present.
func (b *Base) SubscribeAll(h Handler) error {
	if len(b.handlers) > 0 {
		return NewMixedSubscriptionKindError("catch-all", "state already has specific subscriptions")
	}
	if b.catchAll != nil {
		return NewDuplicateSubscriptionError("catch-all")
	}
	b.catchAll = h
	return nil
}

// RequestTransition asks the machine to transition to the target, given as
// a registered state instance or as a Key. The request is queued and takes
// effect during the next tick's transition drain; nothing happens
// synchronously. Requests from a state that was never registered, or whose
// machine has shut down, go nowhere.
//
// Must be called on the machine's owning goroutine, typically from a
// handler or lifecycle hook.
func (b *Base) RequestTransition(target any) error {
	if b.requestFn == nil {
		return nil
	}
	return b.requestFn(asKey(target))
}

// stateName returns the state's type name for logs and errors.
func stateName(s State) string {
	return keyName(KeyOf(s))
}
