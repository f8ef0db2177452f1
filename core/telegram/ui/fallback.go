// Package ui declares the contracts the bot surface implements for the
// shared routers.
package ui

import tele "gopkg.in/telebot.v4"

// FallbackProvider supplies the handlers used when an incoming update
// matches no command, dialogue state, or callback verb.
type FallbackProvider interface {
	UnknownText() tele.HandlerFunc
	UnknownDocument() tele.HandlerFunc
	UnknownCallback() tele.HandlerFunc
}
