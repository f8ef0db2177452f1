// Package session holds the process-wide, per-user ephemeral state of
// one ordering session: the cart, the checkout dialogue position, and
// the customer fields collected so far. Nothing here survives a
// restart; open carts are intentionally lost.
package session

import (
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/cart"
	"log/slog"
)

// State identifies a checkout dialogue step.
type State string

const (
	// StateIdle indicates there is no active checkout dialogue.
	StateIdle State = "idle"
	// StateWaitingName awaits the customer name.
	StateWaitingName State = "waiting_name"
	// StateWaitingPhone awaits the contact phone.
	StateWaitingPhone State = "waiting_phone"
	// StateWaitingAddress awaits the delivery address.
	StateWaitingAddress State = "waiting_address"
)

// Session is one user's ordering state.
type Session struct {
	State         State
	CustomerName  string
	CustomerPhone string
	Cart          cart.Cart
}

// Manager owns all sessions and the per-state text handlers. Sessions
// are keyed by Telegram user id; all mutations run under one lock so
// two rapid updates from the same user apply in arrival order.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	handlers map[State]tele.HandlerFunc
}

// NewManager constructs an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		handlers: make(map[State]tele.HandlerFunc),
	}
}

func (m *Manager) session(userID int64) *Session {
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{State: StateIdle, Cart: cart.New()}
		m.sessions[userID] = s
	}
	return s
}

// Get returns a snapshot of the user's session.
func (m *Manager) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		snap := *s
		snap.Cart = s.Cart.Clone()
		return snap
	}
	return Session{State: StateIdle, Cart: cart.New()}
}

// Mutate applies fn to the user's session under the manager lock,
// creating the session on first touch.
func (m *Manager) Mutate(userID int64, fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.session(userID))
}

// GetState returns the user's dialogue state, StateIdle if unknown.
func (m *Manager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return s.State
	}
	return StateIdle
}

// SetState moves the user's dialogue to the given state.
func (m *Manager) SetState(userID int64, st State) {
	m.Mutate(userID, func(s *Session) { s.State = st })
}

// Reset abandons any dialogue in progress: state back to idle, cart
// emptied, collected customer fields dropped.
func (m *Manager) Reset(userID int64) {
	m.Mutate(userID, func(s *Session) {
		s.State = StateIdle
		s.CustomerName = ""
		s.CustomerPhone = ""
		s.Cart.Clear()
	})
}

// InProgress reports whether the user is inside a checkout dialogue.
func (m *Manager) InProgress(userID int64) bool {
	return m.GetState(userID) != StateIdle
}

// RegisterHandler associates a dialogue state with its text handler.
func (m *Manager) RegisterHandler(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[st] = h
}

// ManagerHandler executes the handler registered for the user's current
// state, if any.
func (m *Manager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	current := m.GetState(userID)

	if logger.TG != nil {
		logger.TG.Debug("fsm dispatch",
			slog.String("event", "fsm.manager"),
			slog.Int64("user_id", userID),
			slog.String("handler", string(current)),
		)
	}

	m.mu.RLock()
	handler, ok := m.handlers[current]
	m.mu.RUnlock()
	if ok {
		return handler(c)
	}
	return nil
}
