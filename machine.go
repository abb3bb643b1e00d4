package strata

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Machine owns a registered set of states and drives them from a single
// goroutine. Producers on any goroutine push messages; only the goroutine
// that constructed the machine ticks it. A tick snapshots the inbox,
// advances reminders on the active path, drains all queued transitions in
// FIFO order, and dispatches at most one message.
type Machine struct {
	id       string
	registry map[Key]State
	current  State

	transitions []State // queued destinations, drained FIFO each tick
	inbox       inbox
	pending     []Message // tick-side buffer, consumed one message per tick

	lastTick time.Time
	ticked   bool
	now      func() time.Time

	owner uint64
	mu    sync.Mutex // guards the registration phase

	log        Logger
	noisy      Logger
	noisyNames map[string]struct{}

	cfg    Config
	cfgSet bool
}

// NewMachine builds a machine owned by the calling goroutine. Only that
// goroutine may call Tick.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		id:         uuid.New().String(),
		registry:   make(map[Key]State),
		noisyNames: make(map[string]struct{}),
		now:        time.Now,
		owner:      goid(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = NewLogger(os.Stderr, false)
	}
	if m.cfgSet {
		m.log.SetDebugEnabled(m.cfg.Debug)
		if m.noisy != nil {
			m.noisy.SetDebugEnabled(m.cfg.NoisyDebug)
		}
		for _, name := range m.cfg.NoisyMessages {
			m.noisyNames[name] = struct{}{}
		}
		if m.cfg.QueueCapacity > 0 && m.pending == nil {
			m.pending = make([]Message, 0, m.cfg.QueueCapacity)
		}
	}
	if m.noisy == nil {
		m.noisy = m.log
	}
	if m.log.DebugEnabled() {
		m.log.Debug("machine created", "machine", m.id, "owner", m.owner)
	}
	return m
}

// Register adds a state to the machine and installs its transition-request
// hook. It fails with DuplicateStateInstance when the same instance is
// registered twice and with DuplicateStateType when another state of the
// same type is already present. States stay registered until Shutdown.
func (m *Machine) Register(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.registry {
		if existing == s {
			return NewDuplicateStateInstanceError(stateName(s))
		}
	}
	key := KeyOf(s)
	if _, exists := m.registry[key]; exists {
		return NewDuplicateStateTypeError(keyName(key))
	}
	m.registry[key] = s
	s.base().requestFn = m.enqueueTransition
	if m.log.DebugEnabled() {
		m.log.Debug("state registered", "machine", m.id, "state", keyName(key))
	}
	return nil
}

// SetInitial queues a transition to the given state, identified by instance
// or by Key. It fails with UnknownInitialState when the target was never
// registered. The transition is applied by the next Tick; with no current
// state the destination only arrives, no enter cascade runs.
func (m *Machine) SetInitial(target any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := asKey(target)
	dest, ok := m.registry[key]
	if !ok {
		return NewUnknownInitialStateError(keyName(key))
	}
	m.transitions = append(m.transitions, dest)
	return nil
}

// Push enqueues a message for dispatch. Safe to call from any goroutine.
func (m *Machine) Push(msg Message) {
	m.inbox.push(msg)
}

// Tick runs one machine step: snapshot the inbox, advance reminders on the
// active path by the wall-clock delta since the previous tick, drain every
// queued transition, then dispatch at most one message. The first tick
// establishes the clock baseline with zero elapsed time.
//
// Tick must be called from the goroutine that constructed the machine; any
// other caller gets WrongThreadAccess and the machine is left untouched.
func (m *Machine) Tick() error {
	if caller := goid(); caller != m.owner {
		return NewWrongThreadAccessError("Tick", m.owner, caller)
	}

	now := m.now()
	var delta time.Duration
	if m.ticked {
		delta = now.Sub(m.lastTick)
	}
	m.lastTick = now
	m.ticked = true

	// Snapshot the inbox before reminders fire so a fired payload is never
	// dispatched in the tick that fired it.
	m.pending = m.inbox.drainInto(m.pending)

	m.advanceReminders(delta)
	m.drainTransitions()
	m.dispatchOne()
	return nil
}

// InState reports whether the machine currently sits in the given state or
// in any of its descendants. The target may be a state instance or a Key.
func (m *Machine) InState(target any) bool {
	key := asKey(target)
	for node := m.current; node != nil; node = m.parentOf(node) {
		if KeyOf(node) == key {
			return true
		}
	}
	return false
}

// Current returns the active leaf state, or nil before the first transition
// has been applied.
func (m *Machine) Current() State {
	return m.current
}

// Pending reports how many messages are waiting for dispatch, counting both
// the thread-safe inbox and the tick-side buffer.
func (m *Machine) Pending() int {
	return len(m.pending) + m.inbox.size()
}

// Shutdown detaches the transition-request hook from every registered
// state. Requests raised after shutdown go nowhere. The machine itself may
// still tick; states and queued messages are left as they are.
func (m *Machine) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.registry {
		s.base().requestFn = nil
	}
	m.log.Info("machine shut down", "machine", m.id)
}

// enqueueTransition resolves a requested target against the registry and
// queues the destination. Installed as every registered state's
// transition-request hook.
func (m *Machine) enqueueTransition(target Key) error {
	dest, ok := m.registry[target]
	if !ok {
		return NewUnknownTransitionTargetError(keyName(target))
	}
	m.transitions = append(m.transitions, dest)
	return nil
}

// advanceReminders applies the tick's elapsed time to every reminder on the
// active path, innermost state first. Fired payloads go through the inbox
// and are picked up by a later tick's snapshot.
func (m *Machine) advanceReminders(delta time.Duration) {
	for node := m.current; node != nil; node = m.parentOf(node) {
		owner := node
		owner.base().advanceReminders(delta, func(r *reminder) {
			m.inbox.push(r.payload)
			if l := m.debugFor(KeyOf(r.payload)); l != nil {
				l.Debug("reminder fired",
					"reminder", r.id,
					"state", stateName(owner),
					"message", keyName(KeyOf(r.payload)),
					"after", r.elapsed)
			}
		})
	}
}

// drainTransitions applies every queued transition in FIFO order, including
// the ones queued by lifecycle hooks while draining. Empty entries are
// skipped. Only the last transition applied determines the state that
// message dispatch sees.
func (m *Machine) drainTransitions() {
	for len(m.transitions) > 0 {
		dest := m.transitions[0]
		m.transitions[0] = nil
		m.transitions = m.transitions[1:]
		if dest == nil {
			m.log.Debug("skipping empty transition entry")
			continue
		}
		m.applyTransition(dest)
	}
}

// applyTransition runs one transition cascade to dest.
func (m *Machine) applyTransition(dest State) {
	if m.current == nil {
		// Initial transition: the destination only arrives.
		m.current = dest
		if m.log.DebugEnabled() {
			m.log.Debug("initial transition", "state", stateName(dest))
		}
		dest.Arrive()
		return
	}
	if dest == m.current {
		if m.log.DebugEnabled() {
			m.log.Debug("transition to current state ignored", "state", stateName(dest))
		}
		return
	}

	from := m.current
	boundary := m.commonAncestor(from, dest)

	// Exit cascade: from the current leaf outward, stopping short of the
	// boundary. With no common ancestor the walk exits everything to the
	// root and the enter cascade below rebuilds the destination chain in
	// full.
	for node := from; node != nil && node != boundary; node = m.parentOf(node) {
		node.Exit()
		node.base().ClearAllReminders()
	}

	// Enter cascade: the destination chain up to the boundary, entered
	// outermost first so dest enters last.
	var entering []State
	for node := dest; node != nil && node != boundary; node = m.parentOf(node) {
		entering = append(entering, node)
	}
	for i := len(entering) - 1; i >= 0; i-- {
		entering[i].Enter()
	}

	m.current = dest
	if m.log.DebugEnabled() {
		m.log.Debug("transition", "from", stateName(from), "to", stateName(dest))
	}
	dest.Arrive()
}

// commonAncestor returns the lowest common ancestor of a and b, walking a's
// chain outward and probing b's chain for each candidate. Returns nil when
// the two states live in disjoint trees.
func (m *Machine) commonAncestor(a, b State) State {
	for candidate := a; candidate != nil; candidate = m.parentOf(candidate) {
		for node := b; node != nil; node = m.parentOf(node) {
			if node == candidate {
				return candidate
			}
		}
	}
	return nil
}

// parentOf resolves a state's parent link through the registry. A parent
// key that was never registered behaves like no parent at all.
func (m *Machine) parentOf(s State) State {
	key := s.base().parent
	if key == nil {
		return nil
	}
	return m.registry[key]
}

// dispatchOne pops the oldest buffered message and routes it.
func (m *Machine) dispatchOne() {
	if len(m.pending) == 0 {
		return
	}
	msg := m.pending[0]
	m.pending[0] = nil
	m.pending = m.pending[1:]
	m.dispatch(msg)
}

// dispatch routes one message. The current state is consulted first, then
// the ancestor chain; the walk ends at the first ancestor holding any
// handler for the message, whatever that handler reports.
func (m *Machine) dispatch(msg Message) {
	key := KeyOf(msg)
	if m.current == nil {
		if l := m.debugFor(key); l != nil {
			l.Debug("message dropped, no active state", "message", keyName(key))
		}
		return
	}

	node := m.current.base()
	handled := false
	consulted := false
	if node.catchAll != nil {
		consulted = true
		handled = node.catchAll(msg)
	}
	if h, ok := node.handlers[key]; ok {
		// The specific handler's verdict replaces the catch-all verdict on
		// the same state. Subscribe and SubscribeAll keep the two kinds
		// from coexisting, so through the public API only one branch runs.
		consulted = true
		handled = h(msg)
	}
	if handled {
		m.logDispatched(key, m.current, true)
		return
	}

	for ancestor := m.parentOf(m.current); ancestor != nil; ancestor = m.parentOf(ancestor) {
		ab := ancestor.base()
		if ab.catchAll != nil {
			handled = ab.catchAll(msg)
			m.logDispatched(key, ancestor, handled)
			return
		}
		if h, ok := ab.handlers[key]; ok {
			// The search ends here even when the handler reports not
			// handled; the message does not propagate further up.
			handled = h(msg)
			m.logDispatched(key, ancestor, handled)
			return
		}
	}

	if consulted {
		m.logDispatched(key, m.current, false)
		return
	}
	if l := m.debugFor(key); l != nil {
		l.Debug("message unhandled, dropping", "message", keyName(key), "state", stateName(m.current))
	}
}

func (m *Machine) logDispatched(key Key, s State, handled bool) {
	if l := m.debugFor(key); l != nil {
		l.Debug("message dispatched", "message", keyName(key), "state", stateName(s), "handled", handled)
	}
}

// debugFor returns the sink that debug lines about the given message type
// go to, or nil when that sink has debug output disabled. Noisy-classified
// types route to the secondary logger only.
func (m *Machine) debugFor(key Key) Logger {
	if m.isNoisy(key) {
		if m.noisy.DebugEnabled() {
			return m.noisy
		}
		return nil
	}
	if m.log.DebugEnabled() {
		return m.log
	}
	return nil
}

func (m *Machine) isNoisy(key Key) bool {
	if len(m.noisyNames) == 0 {
		return false
	}
	_, ok := m.noisyNames[keyName(key)]
	return ok
}

// goid returns the id of the calling goroutine, parsed from the header of
// its stack trace.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(header, ' '); i > 0 {
		if id, err := strconv.ParseUint(header[:i], 10, 64); err == nil {
			return id
		}
	}
	return 0
}
