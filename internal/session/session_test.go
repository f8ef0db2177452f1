package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnknownUserIsIdle(t *testing.T) {
	m := NewManager()

	require.Equal(t, StateIdle, m.GetState(42))
	require.False(t, m.InProgress(42))

	sess := m.Get(42)
	require.Equal(t, StateIdle, sess.State)
	require.True(t, sess.Cart.Empty())
}

func TestStateTransitions(t *testing.T) {
	m := NewManager()
	uid := int64(7)

	m.SetState(uid, StateWaitingName)
	require.Equal(t, StateWaitingName, m.GetState(uid))
	require.True(t, m.InProgress(uid))

	m.SetState(uid, StateWaitingPhone)
	m.SetState(uid, StateWaitingAddress)
	require.Equal(t, StateWaitingAddress, m.GetState(uid))
}

func TestResetDropsEverything(t *testing.T) {
	m := NewManager()
	uid := int64(7)

	m.Mutate(uid, func(s *Session) {
		s.State = StateWaitingAddress
		s.CustomerName = "Ann"
		s.CustomerPhone = "+1 555 0100"
		s.Cart.Add(1)
	})

	m.Reset(uid)

	sess := m.Get(uid)
	require.Equal(t, StateIdle, sess.State)
	require.Empty(t, sess.CustomerName)
	require.Empty(t, sess.CustomerPhone)
	require.True(t, sess.Cart.Empty())
}

func TestGetReturnsSnapshot(t *testing.T) {
	m := NewManager()
	uid := int64(7)

	m.Mutate(uid, func(s *Session) { s.Cart.Add(1) })

	snap := m.Get(uid)
	snap.Cart.Add(1)
	snap.Cart.Add(2)

	fresh := m.Get(uid)
	require.Equal(t, 1, fresh.Cart["1"])
	require.Zero(t, fresh.Cart["2"])
}
