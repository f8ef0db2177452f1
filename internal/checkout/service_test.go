package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/catalog"
	"github.com/m3rciful/shopbot/internal/session"
)

type stubCatalog map[int64]catalog.Product

func (s stubCatalog) GetProduct(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := s[id]
	if !ok {
		return catalog.Product{}, fmt.Errorf("product %d: %w", id, catalog.ErrNotFound)
	}
	return p, nil
}

func TestCheckoutFlow(t *testing.T) {
	sessions := session.NewManager()
	store := stubCatalog{1: {ID: 1, Name: "Assam", Price: 450}}
	svc := NewService(sessions, store, "₽")
	ctx := context.Background()
	uid := int64(100)

	sessions.Mutate(uid, func(s *session.Session) {
		s.Cart.Add(1)
		s.Cart.Add(1)
	})

	require.NoError(t, svc.Start(ctx, uid))
	require.Equal(t, session.StateWaitingName, sessions.GetState(uid))

	svc.SubmitName(ctx, uid, "Ann")
	require.Equal(t, session.StateWaitingPhone, sessions.GetState(uid))

	svc.SubmitPhone(ctx, uid, "+1 555 0100")
	require.Equal(t, session.StateWaitingAddress, sessions.GetState(uid))

	var delivered []string
	notify := NotifierFunc(func(_ context.Context, text string) error {
		delivered = append(delivered, text)
		return nil
	})
	require.NoError(t, svc.SubmitAddress(ctx, uid, "1 Main St", notify))

	require.Len(t, delivered, 1)
	order := delivered[0]
	require.Contains(t, order, "Customer: Ann")
	require.Contains(t, order, "Phone: +1 555 0100")
	require.Contains(t, order, "Address: 1 Main St")
	require.Contains(t, order, "Assam × 2 = 900 ₽")
	require.Contains(t, order, "Total: 900 ₽")

	after := sessions.Get(uid)
	require.Equal(t, session.StateIdle, after.State)
	require.True(t, after.Cart.Empty())
	require.Zero(t, svc.DeliveryFailures())
}

func TestStartRejectsEmptyCart(t *testing.T) {
	sessions := session.NewManager()
	svc := NewService(sessions, stubCatalog{}, "₽")

	err := svc.Start(context.Background(), 100)
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Equal(t, session.StateIdle, sessions.GetState(100))
}

func TestDeliveryFailureStillResets(t *testing.T) {
	sessions := session.NewManager()
	store := stubCatalog{1: {ID: 1, Name: "Assam", Price: 450}}
	svc := NewService(sessions, store, "₽")
	ctx := context.Background()
	uid := int64(100)

	sessions.Mutate(uid, func(s *session.Session) { s.Cart.Add(1) })
	require.NoError(t, svc.Start(ctx, uid))
	svc.SubmitName(ctx, uid, "Ann")
	svc.SubmitPhone(ctx, uid, "+1 555 0100")

	notify := NotifierFunc(func(_ context.Context, _ string) error {
		return errors.New("operator chat unreachable")
	})
	require.NoError(t, svc.SubmitAddress(ctx, uid, "1 Main St", notify))

	require.Equal(t, uint64(1), svc.DeliveryFailures())
	after := sessions.Get(uid)
	require.Equal(t, session.StateIdle, after.State)
	require.True(t, after.Cart.Empty())
}

func TestAbort(t *testing.T) {
	sessions := session.NewManager()
	store := stubCatalog{1: {ID: 1, Name: "Assam", Price: 450}}
	svc := NewService(sessions, store, "₽")
	ctx := context.Background()
	uid := int64(100)

	sessions.Mutate(uid, func(s *session.Session) { s.Cart.Add(1) })
	require.NoError(t, svc.Start(ctx, uid))

	svc.Abort(uid)
	require.Equal(t, session.StateIdle, sessions.GetState(uid))
	require.True(t, sessions.Get(uid).Cart.Empty())
}
