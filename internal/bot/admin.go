package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"github.com/m3rciful/shopbot/internal/catalog"
	"log/slog"
)

const adminHelpText = `Catalog:
/add_section <name>
/del_section <id>
/add_subsection <section_id> | <name>
/del_subsection <id>
/add_product <subsection_id> | <name> | <price>
/del_product <id>

Audience:
/users_count
/broadcast <text>`

// adminCommands lists the operator-only command surface. AdminOnly and
// Hidden are stamped on during registration.
func (h *Handlers) adminCommands() map[string]commands.Command {
	return map[string]commands.Command{
		"/add_section":    {Handler: h.addSection, Description: "Add a catalog section"},
		"/del_section":    {Handler: h.delSection, Description: "Delete a section and everything in it"},
		"/add_subsection": {Handler: h.addSubsection, Description: "Add a subsection to a section"},
		"/del_subsection": {Handler: h.delSubsection, Description: "Delete a subsection and its products"},
		"/add_product":    {Handler: h.addProduct, Description: "Add a product to a subsection"},
		"/del_product":    {Handler: h.delProduct, Description: "Delete a product"},
		"/users_count":    {Handler: h.usersCount, Description: "Show how many users started the bot"},
		"/broadcast":      {Handler: h.broadcast, Description: "Send a message to every known user"},
	}
}

func (h *Handlers) adminHelp(c tele.Context) error {
	return tghelpers.SendText(c, adminHelpText)
}

func (h *Handlers) addSection(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return tghelpers.SendText(c, "Usage: /add_section <name>")
	}
	id, err := h.store.CreateSection(ctx, name)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Section #%d added ✅", id))
}

func (h *Handlers) delSection(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	id, ok := parseID(c.Message().Payload)
	if !ok {
		return tghelpers.SendText(c, "Usage: /del_section <id>")
	}
	err := h.store.DeleteSection(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return tghelpers.SendText(c, "No section with that id.")
	}
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, "Section removed, together with everything in it ✅")
}

func (h *Handlers) addSubsection(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	parts := splitParts(c.Message().Payload, 2)
	if parts == nil {
		return tghelpers.SendText(c, "Usage: /add_subsection <section_id> | <name>")
	}
	sectionID, ok := parseID(parts[0])
	if !ok {
		return tghelpers.SendText(c, "Usage: /add_subsection <section_id> | <name>")
	}
	id, err := h.store.CreateSubsection(ctx, sectionID, parts[1])
	if errors.Is(err, catalog.ErrNotFound) {
		return tghelpers.SendText(c, "No section with that id.")
	}
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Subsection #%d added ✅", id))
}

func (h *Handlers) delSubsection(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	id, ok := parseID(c.Message().Payload)
	if !ok {
		return tghelpers.SendText(c, "Usage: /del_subsection <id>")
	}
	err := h.store.DeleteSubsection(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return tghelpers.SendText(c, "No subsection with that id.")
	}
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, "Subsection removed, products included ✅")
}

func (h *Handlers) addProduct(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	usage := "Usage: /add_product <subsection_id> | <name> | <price>"
	parts := splitParts(c.Message().Payload, 3)
	if parts == nil {
		return tghelpers.SendText(c, usage)
	}
	subsectionID, ok := parseID(parts[0])
	if !ok {
		return tghelpers.SendText(c, usage)
	}
	price, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || price < 0 {
		return tghelpers.SendText(c, "Price must be a non-negative integer.")
	}

	id, err := h.store.CreateProduct(ctx, subsectionID, parts[1], price)
	if errors.Is(err, catalog.ErrNotFound) {
		return tghelpers.SendText(c, "No subsection with that id.")
	}
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Product #%d added at %d %s ✅",
		id, catalog.RoundPrice(price), h.currency))
}

func (h *Handlers) delProduct(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	id, ok := parseID(c.Message().Payload)
	if !ok {
		return tghelpers.SendText(c, "Usage: /del_product <id>")
	}
	err := h.store.DeleteProduct(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return tghelpers.SendText(c, "No product with that id.")
	}
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, "Product removed ✅")
}

func (h *Handlers) usersCount(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	n, err := h.users.Count(ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("%d users have started the bot.", n))
}

// broadcast sends the payload to every known user. A recipient that
// blocked the bot must not stop the rest of the run.
func (h *Handlers) broadcast(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		return tghelpers.SendText(c, "Usage: /broadcast <text>")
	}

	ids, err := h.users.ListIDs(ctx)
	if err != nil {
		return err
	}

	var sent, failed int
	for _, id := range ids {
		if _, err := c.Bot().Send(&tele.User{ID: id}, text); err != nil {
			failed++
			continue
		}
		sent++
	}

	if logger.SVCUsers != nil {
		logger.SVCUsers.InfoContext(ctx, "broadcast finished",
			slog.String("event", "broadcast"),
			slog.Int("sent", sent),
			slog.Int("failed", failed),
		)
	}
	return tghelpers.SendText(c, fmt.Sprintf("Broadcast finished: %d delivered, %d failed.", sent, failed))
}

func parseID(payload string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// splitParts splits a pipe-delimited command payload into exactly n
// trimmed, non-empty fields. The last field may itself contain pipes.
func splitParts(payload string, n int) []string {
	parts := strings.SplitN(payload, "|", n)
	if len(parts) != n {
		return nil
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil
		}
	}
	return parts
}
