// Package checkout drives the finite-state dialogue that turns a cart
// into an order: name, phone, address, then one summary message to the
// operator chat.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/cart"
	"github.com/m3rciful/shopbot/internal/catalog"
	"github.com/m3rciful/shopbot/internal/session"
	"log/slog"
)

// ErrEmptyCart rejects a checkout started with no items.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Notifier delivers a finished order to the operator channel.
type Notifier interface {
	NotifyOperator(ctx context.Context, text string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, text string) error

// NotifyOperator executes the underlying function.
func (f NotifierFunc) NotifyOperator(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Service implements the checkout dialogue transitions on top of the
// session manager. Delivery failures are counted, never propagated.
type Service struct {
	sessions *session.Manager
	store    catalog.ProductGetter
	currency string

	deliveryFailures atomic.Uint64
}

// NewService wires the dialogue to its collaborators.
func NewService(sessions *session.Manager, store catalog.ProductGetter, currency string) *Service {
	return &Service{
		sessions: sessions,
		store:    store,
		currency: currency,
	}
}

// Start moves an idle user into the name prompt. A user with an empty
// cart stays idle and gets ErrEmptyCart.
func (s *Service) Start(ctx context.Context, userID int64) error {
	if s.sessions.Get(userID).Cart.Empty() {
		return ErrEmptyCart
	}
	s.sessions.SetState(userID, session.StateWaitingName)
	return nil
}

// SubmitName stores the text verbatim and advances to the phone prompt.
func (s *Service) SubmitName(ctx context.Context, userID int64, text string) {
	s.sessions.Mutate(userID, func(sess *session.Session) {
		sess.CustomerName = text
		sess.State = session.StateWaitingPhone
	})
}

// SubmitPhone stores the text verbatim and advances to the address prompt.
func (s *Service) SubmitPhone(ctx context.Context, userID int64, text string) {
	s.sessions.Mutate(userID, func(sess *session.Session) {
		sess.CustomerPhone = text
		sess.State = session.StateWaitingAddress
	})
}

// SubmitAddress completes the dialogue: it renders the order summary,
// hands it to the operator channel, and resets the session to idle with
// an empty cart. A delivery failure is logged and counted but does not
// keep the user stuck in the dialogue.
func (s *Service) SubmitAddress(ctx context.Context, userID int64, address string, notify Notifier) error {
	sess := s.sessions.Get(userID)

	summary, total, err := cart.Summary(ctx, s.store, sess.Cart, s.currency)
	if err != nil {
		return fmt.Errorf("checkout: render order: %w", err)
	}

	order := fmt.Sprintf(
		"🧾 New order\nCustomer: %s\nPhone: %s\nAddress: %s\n\n%s",
		sess.CustomerName, sess.CustomerPhone, address, summary,
	)

	if err := notify.NotifyOperator(ctx, order); err != nil {
		s.deliveryFailures.Add(1)
		if logger.SVCOrders != nil {
			logger.SVCOrders.ErrorContext(ctx, "order delivery failed",
				slog.String("event", "order.deliver"),
				slog.String("status", "fail"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
	} else if logger.SVCOrders != nil {
		logger.SVCOrders.InfoContext(ctx, "order delivered",
			slog.String("event", "order.deliver"),
			slog.String("status", "ok"),
			slog.Int64("user_id", userID),
			slog.Int64("total", total),
		)
	}

	s.sessions.Reset(userID)
	return nil
}

// Abort drops any dialogue in progress, e.g. on /start re-entry.
func (s *Service) Abort(userID int64) {
	s.sessions.Reset(userID)
}

// DeliveryFailures reports how many operator deliveries have failed.
func (s *Service) DeliveryFailures() uint64 {
	return s.deliveryFailures.Load()
}
