package strata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinParentState struct {
	Base
}

type pinChildState struct {
	Base
}

// Subscribe and SubscribeAll keep a state from holding both subscription
// kinds, so the dispatch path that consults the catch-all and then lets a
// specific handler's verdict replace its result cannot be reached through
// the public API. These tests plant both kinds directly into the table to
// pin that path down: the catch-all runs first, the specific handler runs
// second, and only the specific verdict counts.
func TestSpecificVerdictOverridesCatchAll(t *testing.T) {
	t.Run("specific decline discards catch-all claim", func(t *testing.T) {
		var calls []string
		parent := &pinParentState{}
		child := &pinChildState{}
		child.SetParent(For[*pinParentState]())
		child.catchAll = func(Message) bool {
			calls = append(calls, "catch-all")
			return true
		}
		child.handlers = map[Key]Handler{
			For[probeMsg](): func(Message) bool {
				calls = append(calls, "specific")
				return false
			},
		}
		require.NoError(t, parent.Subscribe(For[probeMsg](), func(Message) bool {
			calls = append(calls, "parent")
			return true
		}))

		m := NewMachine(WithLogger(NopLogger{}))
		require.NoError(t, m.Register(parent))
		require.NoError(t, m.Register(child))
		require.NoError(t, m.SetInitial(child))
		require.NoError(t, m.Tick())

		m.Push(probeMsg{})
		require.NoError(t, m.Tick())

		// the catch-all claimed the message, the specific decline threw
		// that claim away, and the walk moved on to the parent
		assert.Equal(t, []string{"catch-all", "specific", "parent"}, calls)
	})

	t.Run("specific claim discards catch-all decline", func(t *testing.T) {
		var calls []string
		parent := &pinParentState{}
		child := &pinChildState{}
		child.SetParent(For[*pinParentState]())
		child.catchAll = func(Message) bool {
			calls = append(calls, "catch-all")
			return false
		}
		child.handlers = map[Key]Handler{
			For[probeMsg](): func(Message) bool {
				calls = append(calls, "specific")
				return true
			},
		}
		require.NoError(t, parent.Subscribe(For[probeMsg](), func(Message) bool {
			calls = append(calls, "parent")
			return true
		}))

		m := NewMachine(WithLogger(NopLogger{}))
		require.NoError(t, m.Register(parent))
		require.NoError(t, m.Register(child))
		require.NoError(t, m.SetInitial(child))
		require.NoError(t, m.Tick())

		m.Push(probeMsg{})
		require.NoError(t, m.Tick())

		assert.Equal(t, []string{"catch-all", "specific"}, calls)
	})
}
