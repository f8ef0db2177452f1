// Package bot wires the storefront dialogue to Telegram: the inline
// catalog browser, the cart, the checkout dialogue, and the admin
// command surface.
package bot

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/callbacks"
	"github.com/m3rciful/shopbot/core/telegram/commands"
	"github.com/m3rciful/shopbot/internal/catalog"
	"github.com/m3rciful/shopbot/internal/checkout"
	"github.com/m3rciful/shopbot/internal/nav"
	"github.com/m3rciful/shopbot/internal/session"
	"github.com/m3rciful/shopbot/internal/users"
)

// Options carries every collaborator the handler set needs.
type Options struct {
	Store    catalog.Store
	Users    *users.Store
	Sessions *session.Manager
	Checkout *checkout.Service

	// OperatorID is the chat that receives finished orders and may use
	// the admin commands.
	OperatorID int64
	Currency   string
	Greeting   string
	About      string
}

// Handlers is the full Telegram-facing handler set of the storefront.
type Handlers struct {
	store    catalog.Store
	users    *users.Store
	sessions *session.Manager
	checkout *checkout.Service

	operatorID int64
	currency   string
	greeting   string
	about      string
}

// New builds the handler set from its collaborators.
func New(opts Options) *Handlers {
	return &Handlers{
		store:      opts.Store,
		users:      opts.Users,
		sessions:   opts.Sessions,
		checkout:   opts.Checkout,
		operatorID: opts.OperatorID,
		currency:   opts.Currency,
		greeting:   opts.Greeting,
		about:      opts.About,
	}
}

// Register attaches every command, callback verb, and checkout state
// handler to the registry and session manager.
func (h *Handlers) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.onStart,
		Description: "Open the main menu",
	})

	reg.RegisterCommand("/admin", commands.Command{
		Handler:     h.adminHelp,
		Description: "List admin commands",
		AdminOnly:   true,
		Hidden:      true,
	})
	for name, cmd := range h.adminCommands() {
		cmd.AdminOnly = true
		cmd.Hidden = true
		reg.RegisterCommand(name, cmd)
	}

	actions := map[string]func(tele.Context, nav.Action) error{
		nav.VerbOpenCatalog:    h.openCatalog,
		nav.VerbOpenSection:    h.openSection,
		nav.VerbOpenSubsection: h.openSubsection,
		nav.VerbAdd:            h.addToCart,
		nav.VerbOpenCart:       h.openCart,
		nav.VerbCheckout:       h.startCheckout,
		nav.VerbClearCart:      h.clearCart,
		nav.VerbAbout:          h.showAbout,
		nav.VerbBackMain:       h.backToMenu,
	}
	for verb, fn := range actions {
		if err := reg.RegisterCallback(verb, h.action(verb, fn)); err != nil {
			return err
		}
	}

	h.sessions.RegisterHandler(session.StateWaitingName, h.checkoutName)
	h.sessions.RegisterHandler(session.StateWaitingPhone, h.checkoutPhone)
	h.sessions.RegisterHandler(session.StateWaitingAddress, h.checkoutAddress)

	return nil
}

// action decodes the callback payload for a verb before invoking the
// typed handler. A token that fails to decode gets a silent toast; the
// keyboards never emit such tokens, but old messages outlive deploys.
func (h *Handlers) action(verb string, fn func(tele.Context, nav.Action) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		act, err := nav.Decode(verb, callbacks.CallbackPayload(c))
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "This button is no longer active"})
		}
		return fn(c, act)
	}
}
