package bot

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/core/telegram/keyboard"
	"github.com/m3rciful/shopbot/internal/catalog"
	"github.com/m3rciful/shopbot/internal/nav"
	"github.com/m3rciful/shopbot/internal/paging"
	"github.com/m3rciful/shopbot/internal/session"
)

func (h *Handlers) openCatalog(c tele.Context, act nav.Action) error {
	_ = c.Respond()
	return h.renderSections(c, act.(nav.OpenCatalog).Page)
}

func (h *Handlers) openSection(c tele.Context, act nav.Action) error {
	_ = c.Respond()
	a := act.(nav.OpenSection)
	return h.renderSubsections(c, a.SectionID, a.Page)
}

func (h *Handlers) openSubsection(c tele.Context, act nav.Action) error {
	_ = c.Respond()
	a := act.(nav.OpenSubsection)
	return h.renderProducts(c, a.SubsectionID, a.Page)
}

func (h *Handlers) renderSections(c tele.Context, page int) error {
	ctx := tghelpers.BuildContext(c)

	total, err := h.store.CountSections(ctx)
	if err != nil {
		return err
	}
	page = paging.Clamp(page, total)
	sections, _, err := h.store.ListSections(ctx, page, paging.PageSize)
	if err != nil {
		return err
	}

	rows := make([][]keyboard.InlineBtn, 0, len(sections)+2)
	for _, s := range sections {
		rows = append(rows, []keyboard.InlineBtn{
			actionBtn(truncate(s.Name, btnLabelMax), nav.OpenSection{SectionID: s.ID}),
		})
	}
	if row := pagerRow(page, total, func(p int) nav.Action { return nav.OpenCatalog{Page: p} }); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows, []keyboard.InlineBtn{actionBtn("⬅️ Menu", nav.BackMain{})})

	text := fmt.Sprintf("🛍 *Catalog* — page %d/%d", page+1, paging.TotalPages(total))
	if total == 0 {
		text += "\nNothing on the shelves yet, check back later."
	} else {
		text += "\nPick a section:"
	}
	return tghelpers.EditOrSendMD(c, text, keyboard.InlineButtonsRows(rows...))
}

func (h *Handlers) renderSubsections(c tele.Context, sectionID int64, page int) error {
	ctx := tghelpers.BuildContext(c)

	sec, err := h.store.GetSection(ctx, sectionID)
	if errors.Is(err, catalog.ErrNotFound) {
		return h.gone(c, "That section is gone.")
	}
	if err != nil {
		return err
	}

	total, err := h.store.CountSubsections(ctx, sec.ID)
	if err != nil {
		return err
	}
	page = paging.Clamp(page, total)

	subs, _, err := h.store.ListSubsections(ctx, sec.ID, page, paging.PageSize)
	if errors.Is(err, catalog.ErrNotFound) {
		return h.gone(c, "That section is gone.")
	}
	if err != nil {
		return err
	}

	rows := make([][]keyboard.InlineBtn, 0, len(subs)+2)
	for _, sub := range subs {
		rows = append(rows, []keyboard.InlineBtn{
			actionBtn(truncate(sub.Name, btnLabelMax), nav.OpenSubsection{SubsectionID: sub.ID}),
		})
	}
	if row := pagerRow(page, total, func(p int) nav.Action {
		return nav.OpenSection{SectionID: sec.ID, Page: p}
	}); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows, []keyboard.InlineBtn{actionBtn("⬅️ Back", nav.OpenCatalog{})})

	text := fmt.Sprintf("📂 *%s* — page %d/%d", mdName(sec.Name), page+1, paging.TotalPages(total))
	if total == 0 {
		text += "\nNothing here yet."
	}
	return tghelpers.EditOrSendMD(c, text, keyboard.InlineButtonsRows(rows...))
}

func (h *Handlers) renderProducts(c tele.Context, subsectionID int64, page int) error {
	ctx := tghelpers.BuildContext(c)

	sub, err := h.store.GetSubsection(ctx, subsectionID)
	if errors.Is(err, catalog.ErrNotFound) {
		return h.gone(c, "That shelf is gone.")
	}
	if err != nil {
		return err
	}

	total, err := h.store.CountProducts(ctx, sub.ID)
	if err != nil {
		return err
	}
	page = paging.Clamp(page, total)

	products, _, err := h.store.ListProducts(ctx, sub.ID, page, paging.PageSize)
	if errors.Is(err, catalog.ErrNotFound) {
		return h.gone(c, "That shelf is gone.")
	}
	if err != nil {
		return err
	}

	rows := make([][]keyboard.InlineBtn, 0, len(products)+2)
	for _, p := range products {
		label := fmt.Sprintf("%s — %d %s", truncate(p.Name, btnLabelMax), p.Price, h.currency)
		rows = append(rows, []keyboard.InlineBtn{
			actionBtn(label, nav.AddToCart{ProductID: p.ID, SubsectionID: sub.ID, Page: page}),
		})
	}
	if row := pagerRow(page, total, func(p int) nav.Action {
		return nav.OpenSubsection{SubsectionID: sub.ID, Page: p}
	}); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows, []keyboard.InlineBtn{actionBtn("⬅️ Back", nav.OpenSection{SectionID: sub.SectionID})})

	text := fmt.Sprintf("🛒 *%s* — page %d/%d", mdName(sub.Name), page+1, paging.TotalPages(total))
	if total == 0 {
		text += "\nNothing here yet."
	} else {
		text += "\nTap a product to add it to the cart:"
	}
	return tghelpers.EditOrSendMD(c, text, keyboard.InlineButtonsRows(rows...))
}

func (h *Handlers) addToCart(c tele.Context, act nav.Action) error {
	a := act.(nav.AddToCart)
	ctx := tghelpers.BuildContext(c)

	p, err := h.store.GetProduct(ctx, a.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		// Deleted while the keyboard was on screen; refresh it.
		if err := c.Respond(&tele.CallbackResponse{Text: "This product is no longer available", ShowAlert: true}); err != nil {
			return err
		}
		return h.renderProducts(c, a.SubsectionID, a.Page)
	}
	if err != nil {
		return err
	}

	h.sessions.Mutate(c.Sender().ID, func(s *session.Session) {
		s.Cart.Add(p.ID)
	})
	return c.Respond(&tele.CallbackResponse{Text: "Added to cart ✅"})
}

// gone replaces a screen whose catalog node disappeared mid-session.
func (h *Handlers) gone(c tele.Context, note string) error {
	return tghelpers.EditOrSendText(c, note, backMainMarkup())
}
