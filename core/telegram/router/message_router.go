package router

import (
	"time"

	tg "github.com/bagrikeng/tanlovbot/core/telegram"
	"github.com/bagrikeng/tanlovbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// ConversationHandlers groups the handlers for non-command updates. Text
// covers free text and button presses, Contact covers shared contacts and
// Media covers every attachment kind accepted as a submission.
type ConversationHandlers struct {
	Text    tele.HandlerFunc
	Contact tele.HandlerFunc
	Media   tele.HandlerFunc
}

// ConversationRoutes builds routes for text, contact and media updates,
// all wrapped with the shared middleware and summary logging.
func ConversationRoutes(h ConversationHandlers) []tg.Route {
	wrap := func(name string, fn tele.HandlerFunc) tele.HandlerFunc {
		inner := func(c tele.Context) error {
			start := time.Now()
			if fn == nil {
				logHandlerSummary(c, name, start, "skip", "ok", nil)
				return nil
			}
			return handleWithSummary(c, name, start, "", "", func() error {
				return fn(c)
			})
		}
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(inner))
	}

	routes := []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap("flow.text", h.Text)},
		{Endpoint: tele.OnContact, Handler: wrap("flow.contact", h.Contact)},
	}
	for _, ep := range []string{tele.OnDocument, tele.OnPhoto, tele.OnAudio, tele.OnVideo, tele.OnVoice} {
		routes = append(routes, tg.Route{Endpoint: ep, Handler: wrap("flow.media", h.Media)})
	}
	return routes
}
