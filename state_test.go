package strata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeDuplicate(t *testing.T) {
	s := &rootState{j: &journal{}}

	require.NoError(t, s.Subscribe(For[probeMsg](), allow))
	err := s.Subscribe(For[probeMsg](), allow)

	require.Error(t, err)
	assert.True(t, IsSubscriptionError(err))
	assert.Equal(t, ErrCodeDuplicateSubscription, GetErrorCode(err))

	// a different message type is still fine
	require.NoError(t, s.Subscribe(For[noteMsg](), allow))
}

func TestSubscribeAllDuplicate(t *testing.T) {
	s := &rootState{j: &journal{}}

	require.NoError(t, s.SubscribeAll(allow))
	err := s.SubscribeAll(allow)

	require.Error(t, err)
	assert.Equal(t, ErrCodeDuplicateSubscription, GetErrorCode(err))
}

func TestMixedSubscriptionKindBothOrders(t *testing.T) {
	specificFirst := &rootState{j: &journal{}}
	require.NoError(t, specificFirst.Subscribe(For[probeMsg](), allow))
	err := specificFirst.SubscribeAll(allow)
	require.Error(t, err)
	assert.True(t, IsSubscriptionError(err))
	assert.Equal(t, ErrCodeMixedSubscriptionKind, GetErrorCode(err))

	catchAllFirst := &childState{j: &journal{}}
	require.NoError(t, catchAllFirst.SubscribeAll(allow))
	err = catchAllFirst.Subscribe(For[probeMsg](), allow)
	require.Error(t, err)
	assert.True(t, IsSubscriptionError(err))
	assert.Equal(t, ErrCodeMixedSubscriptionKind, GetErrorCode(err))
}

func TestSetParent(t *testing.T) {
	s := &childState{j: &journal{}}
	assert.Nil(t, s.Parent())

	s.SetParent(For[*rootState]())
	assert.Equal(t, For[*rootState](), s.Parent())
}

func TestClearRemindersOfType(t *testing.T) {
	s := &rootState{j: &journal{}}
	s.RemindIn(time.Second, pingMsg{})
	s.RemindIn(2*time.Second, noteMsg{text: "keep"})
	s.RemindIn(3*time.Second, pingMsg{})
	require.Len(t, s.reminders, 3)

	s.ClearRemindersOfType(For[pingMsg]())

	require.Len(t, s.reminders, 1)
	assert.Equal(t, noteMsg{text: "keep"}, s.reminders[0].payload)

	s.ClearAllReminders()
	assert.Empty(t, s.reminders)
}

func TestRequestTransitionResolvesInstanceOrKey(t *testing.T) {
	tree := newTestTree(t)
	tree.start(t, tree.child)
	tree.j.take()

	// by instance
	tree.transition(t, tree.child2)
	assert.Same(t, tree.child2, tree.m.Current())
	tree.j.take()

	// by key
	tree.transition(t, For[*childState]())
	assert.Same(t, tree.child, tree.m.Current())
}

func TestStateNameUsesBareTypeName(t *testing.T) {
	assert.Equal(t, "rootState", stateName(&rootState{}))
	assert.Equal(t, "probeMsg", keyName(For[probeMsg]()))
	assert.Equal(t, "probeMsg", keyName(KeyOf(probeMsg{})))
	assert.Equal(t, "<nil>", keyName(nil))
}
