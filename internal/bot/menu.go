package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/core/telegram/format"
	"github.com/m3rciful/shopbot/core/telegram/keyboard"
	"github.com/m3rciful/shopbot/internal/nav"
	"github.com/m3rciful/shopbot/internal/paging"
)

// btnLabelMax keeps inline button labels inside Telegram's limit.
const btnLabelMax = 40

// actionBtn binds a label to a navigation action.
func actionBtn(label string, a nav.Action) keyboard.InlineBtn {
	unique, data := nav.Split(a.Token())
	return keyboard.InlineBtn{Text: label, Unique: unique, Data: data}
}

func mainMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{actionBtn("🛍 Catalog", nav.OpenCatalog{})},
		[]keyboard.InlineBtn{actionBtn("🧺 Cart", nav.OpenCart{})},
		[]keyboard.InlineBtn{actionBtn("ℹ️ About us", nav.About{})},
	)
}

func cartMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{actionBtn("✅ Checkout", nav.Checkout{})},
		[]keyboard.InlineBtn{actionBtn("🗑 Clear cart", nav.ClearCart{})},
		[]keyboard.InlineBtn{actionBtn("⬅️ Menu", nav.BackMain{})},
	)
}

func backMainMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{actionBtn("⬅️ Menu", nav.BackMain{})})
}

// pagerRow renders the prev/next controls for a listing page, or nil
// when the whole listing fits on one page.
func pagerRow(page, total int, to func(page int) nav.Action) []keyboard.InlineBtn {
	var row []keyboard.InlineBtn
	if paging.HasPrev(page) {
		row = append(row, actionBtn("⬅️", to(page-1)))
	}
	if paging.HasNext(page, total) {
		row = append(row, actionBtn("➡️", to(page+1)))
	}
	return row
}

// mdName escapes a catalog name for Markdown message bodies. Button
// labels stay raw; Telegram does not parse markup there.
func mdName(s string) string {
	out, err := format.EscapeMarkdown(s, format.MarkdownV1, "")
	if err != nil {
		return s
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
