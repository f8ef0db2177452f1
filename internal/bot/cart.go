package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/internal/cart"
	"github.com/m3rciful/shopbot/internal/nav"
	"github.com/m3rciful/shopbot/internal/session"
)

func (h *Handlers) openCart(c tele.Context, _ nav.Action) error {
	_ = c.Respond()
	ctx := tghelpers.BuildContext(c)

	sess := h.sessions.Get(c.Sender().ID)
	summary, _, err := cart.Summary(ctx, h.store, sess.Cart, h.currency)
	if err != nil {
		return err
	}
	if summary == cart.EmptyText {
		return tghelpers.EditOrSendText(c, summary, backMainMarkup())
	}
	return tghelpers.EditOrSendText(c, summary, cartMenu())
}

func (h *Handlers) clearCart(c tele.Context, _ nav.Action) error {
	h.sessions.Mutate(c.Sender().ID, func(s *session.Session) {
		s.Cart.Clear()
	})
	_ = c.Respond(&tele.CallbackResponse{Text: "Cart cleared"})
	return tghelpers.EditOrSendText(c, cart.EmptyText, mainMenu())
}
