package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/core/telegram/ui"
)

// Fallbacks answers updates that match no command, dialogue state, or
// callback verb.
type Fallbacks struct{}

var _ ui.FallbackProvider = Fallbacks{}

// UnknownText nudges the user back to the menu.
func (Fallbacks) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "I didn't catch that. Hit /start for the menu.")
	}
}

// UnknownDocument rejects file uploads.
func (Fallbacks) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "I can't do anything with files. Hit /start for the menu.")
	}
}

// UnknownCallback answers presses on keyboards from older deploys.
func (Fallbacks) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "This button is no longer active"})
	}
}
