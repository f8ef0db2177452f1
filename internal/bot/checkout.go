package bot

import (
	"context"
	"errors"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/internal/checkout"
	"github.com/m3rciful/shopbot/internal/nav"
)

func (h *Handlers) startCheckout(c tele.Context, _ nav.Action) error {
	ctx := tghelpers.BuildContext(c)

	if err := h.checkout.Start(ctx, c.Sender().ID); err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			return c.Respond(&tele.CallbackResponse{Text: "Your cart is empty", ShowAlert: true})
		}
		return err
	}
	_ = c.Respond()
	return tghelpers.SendText(c, "Let's arrange the delivery. What's your name?")
}

func (h *Handlers) checkoutName(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	h.checkout.SubmitName(ctx, c.Sender().ID, c.Text())
	return tghelpers.SendText(c, "Got it. What phone number can the operator reach you at?")
}

func (h *Handlers) checkoutPhone(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	h.checkout.SubmitPhone(ctx, c.Sender().ID, c.Text())
	return tghelpers.SendText(c, "And the delivery address, please:")
}

func (h *Handlers) checkoutAddress(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	notify := checkout.NotifierFunc(func(ctx context.Context, text string) error {
		_, err := c.Bot().Send(&tele.User{ID: h.operatorID}, text)
		return err
	})
	if err := h.checkout.SubmitAddress(ctx, c.Sender().ID, c.Text(), notify); err != nil {
		return err
	}

	if err := tghelpers.SendText(c, "Thank you! Your order went to the operator, we'll be in touch shortly ✅"); err != nil {
		return err
	}
	return tghelpers.SendMD(c, "Anything else?", mainMenu())
}
