package strata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// journal records lifecycle-hook invocations in order.
type journal struct {
	entries []string
}

func (j *journal) record(entry string) {
	j.entries = append(j.entries, entry)
}

// take returns everything recorded so far and resets the journal.
func (j *journal) take() []string {
	out := j.entries
	j.entries = nil
	return out
}

// allow is a handler that claims every message.
func allow(Message) bool { return true }

type pingMsg struct{}

type noteMsg struct{ text string }

type probeMsg struct {
	producer int
	seq      int
}

// The test tree:
//
//	rootState ─┬─ childState ──┬─ grandchildState
//	           │               └─ grandchild2State
//	           └─ child2State ─── grandchildBState
//	islandState (a separate root)
type rootState struct {
	Base
	j *journal
}

func (s *rootState) Enter()  { s.j.record("enter:Root") }
func (s *rootState) Exit()   { s.j.record("exit:Root") }
func (s *rootState) Arrive() { s.j.record("arrive:Root") }

type childState struct {
	Base
	j *journal
}

func (s *childState) Enter()  { s.j.record("enter:Child") }
func (s *childState) Exit()   { s.j.record("exit:Child") }
func (s *childState) Arrive() { s.j.record("arrive:Child") }

type grandchildState struct {
	Base
	j *journal
}

func (s *grandchildState) Enter()  { s.j.record("enter:Grandchild") }
func (s *grandchildState) Exit()   { s.j.record("exit:Grandchild") }
func (s *grandchildState) Arrive() { s.j.record("arrive:Grandchild") }

type grandchild2State struct {
	Base
	j *journal
}

func (s *grandchild2State) Enter()  { s.j.record("enter:Grandchild2") }
func (s *grandchild2State) Exit()   { s.j.record("exit:Grandchild2") }
func (s *grandchild2State) Arrive() { s.j.record("arrive:Grandchild2") }

type child2State struct {
	Base
	j *journal
}

func (s *child2State) Enter()  { s.j.record("enter:Child2") }
func (s *child2State) Exit()   { s.j.record("exit:Child2") }
func (s *child2State) Arrive() { s.j.record("arrive:Child2") }

type grandchildBState struct {
	Base
	j *journal
}

func (s *grandchildBState) Enter()  { s.j.record("enter:GrandchildB") }
func (s *grandchildBState) Exit()   { s.j.record("exit:GrandchildB") }
func (s *grandchildBState) Arrive() { s.j.record("arrive:GrandchildB") }

type islandState struct {
	Base
	j *journal
}

func (s *islandState) Enter()  { s.j.record("enter:Island") }
func (s *islandState) Exit()   { s.j.record("exit:Island") }
func (s *islandState) Arrive() { s.j.record("arrive:Island") }

// testTree wires the standard fixture machine with every tree state
// registered.
type testTree struct {
	m      *Machine
	j      *journal
	root   *rootState
	child  *childState
	grand  *grandchildState
	grand2 *grandchild2State
	child2 *child2State
	grandB *grandchildBState
	island *islandState
}

func newTestTree(t *testing.T, opts ...Option) *testTree {
	t.Helper()
	j := &journal{}
	tree := &testTree{
		j:      j,
		root:   &rootState{j: j},
		child:  &childState{j: j},
		grand:  &grandchildState{j: j},
		grand2: &grandchild2State{j: j},
		child2: &child2State{j: j},
		grandB: &grandchildBState{j: j},
		island: &islandState{j: j},
	}
	tree.child.SetParent(For[*rootState]())
	tree.child2.SetParent(For[*rootState]())
	tree.grand.SetParent(For[*childState]())
	tree.grand2.SetParent(For[*childState]())
	tree.grandB.SetParent(For[*child2State]())

	tree.m = NewMachine(append([]Option{WithLogger(NopLogger{})}, opts...)...)
	for _, s := range []State{tree.root, tree.child, tree.grand, tree.grand2, tree.child2, tree.grandB, tree.island} {
		require.NoError(t, tree.m.Register(s))
	}
	return tree
}

// start seeds the initial state and ticks once so it takes effect.
func (tt *testTree) start(t *testing.T, target any) {
	t.Helper()
	require.NoError(t, tt.m.SetInitial(target))
	require.NoError(t, tt.m.Tick())
}

// transition queues a transition request and ticks once to apply it.
func (tt *testTree) transition(t *testing.T, target any) {
	t.Helper()
	require.NoError(t, tt.root.RequestTransition(target))
	require.NoError(t, tt.m.Tick())
}

// fakeClock drives reminder timing deterministically.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1700000000, 0)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}
