package router

import (
	"time"

	tg "github.com/baikal-tours/signup-bot/internal/telegram"
	"github.com/baikal-tours/signup-bot/internal/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversation is the minimal interface the router needs from the
// registration flow driver.
type Conversation interface {
	InProgress(userID int64) bool
	HandleText(c tele.Context) error
	HandleMedia(c tele.Context) error
}

// TextOptions controls fallback behaviour for text and media updates.
type TextOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownMedia tele.HandlerFunc
}

// MessageRoutes builds handlers for text, photo and document updates.
// Exact keyboard labels win over conversation state, so the cancel
// button works mid-form; anything else goes to the active conversation
// step, then commands, then the fallback.
func MessageRoutes(conv Conversation, reg *tg.Registry, opts TextOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if h, ok := reg.GetText(text); ok {
				return handleWithSummary(c, "label."+normalizeHandlerName(text), start, func() error {
					return h(c)
				})
			}
		}

		if conv != nil && c.Sender() != nil && conv.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "form", start, func() error {
				return conv.HandleText(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	mediaHandler := func(c tele.Context) error {
		start := time.Now()
		if conv != nil && c.Sender() != nil && conv.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "form_media", start, func() error {
				return conv.HandleMedia(c)
			})
		}
		if opts.UnknownMedia != nil {
			return handleWithSummary(c, "unexpected_media", start, func() error {
				return opts.UnknownMedia(c)
			})
		}
		logHandlerSummary(c, "unexpected_media", start, "skip", nil)
		return nil
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.Recover(middleware.Logger(middleware.MessageCounters(h)))
	}

	routes := []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap(textHandler)},
		{Endpoint: tele.OnPhoto, Handler: wrap(mediaHandler)},
		{Endpoint: tele.OnDocument, Handler: wrap(mediaHandler)},
		// tele.OnMedia catches the media kinds without an explicit route
		// (stickers, voice, video, audio, animation); contact, location,
		// venue and dice bypass the media fallback and need their own
		// endpoints. All of them must reach the conversation so the
		// payment step can reprompt for a receipt.
		{Endpoint: tele.OnMedia, Handler: wrap(mediaHandler)},
	}
	for _, ep := range []string{tele.OnContact, tele.OnLocation, tele.OnVenue, tele.OnDice} {
		routes = append(routes, tg.Route{Endpoint: ep, Handler: wrap(mediaHandler)})
	}
	return routes
}
