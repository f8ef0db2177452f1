package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/core/logger"
	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/internal/nav"
	"log/slog"
)

// onStart resets any dialogue or cart in progress and shows the main
// menu. It is also the first contact point, so the user is recorded for
// the broadcast audience here.
func (h *Handlers) onStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	uid := c.Sender().ID

	h.sessions.Reset(uid)

	if err := h.users.Register(ctx, uid); err != nil {
		// The menu must come up even if the audience insert failed.
		if logger.SVCUsers != nil {
			logger.SVCUsers.WarnContext(ctx, "user register failed",
				slog.String("event", "register"),
				slog.Int64("user_id", uid),
				slog.String("err", err.Error()),
			)
		}
	}

	return tghelpers.SendMD(c, h.greeting, mainMenu())
}

func (h *Handlers) showAbout(c tele.Context, _ nav.Action) error {
	_ = c.Respond()
	return tghelpers.EditOrSendMD(c, h.about, backMainMarkup())
}

func (h *Handlers) backToMenu(c tele.Context, _ nav.Action) error {
	_ = c.Respond()
	return tghelpers.EditOrSendText(c, "Main menu:", mainMenu())
}
