// Package commands defines the command metadata consumed by the
// registry and the command router.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command couples a handler with its menu description and routing
// metadata. AdminOnly commands are gated on the operator chat id;
// Hidden ones never appear in the Telegram command menu.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
