package app

import (
	"bytes"
	"context"

	tele "gopkg.in/telebot.v4"

	tg "github.com/bagrikeng/tanlovbot/core/telegram"
	"github.com/bagrikeng/tanlovbot/core/telegram/commands"
	tghelpers "github.com/bagrikeng/tanlovbot/core/telegram/helpers"
	"github.com/bagrikeng/tanlovbot/core/telegram/keyboard"
	"github.com/bagrikeng/tanlovbot/core/telegram/router"
	"github.com/bagrikeng/tanlovbot/internal/flow"
	"github.com/bagrikeng/tanlovbot/internal/relay"
	"github.com/bagrikeng/tanlovbot/internal/session"
)

func (a *App) runBot(ctx context.Context) error {
	reg := tg.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.textCommand("/start"),
		Description: "Botni ishga tushirish",
	})
	reg.RegisterCommand("/export", commands.Command{
		Handler:     a.textCommand("/export"),
		Description: "Ma'lumotlarni yuklab olish",
		AdminOnly:   true,
	})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminIDs: a.cfg.Contest.AdminIDs,
	})
	routes = append(routes, router.ConversationRoutes(router.ConversationHandlers{
		Text:    a.onText,
		Contact: a.onContact,
		Media:   a.onMedia,
	})...)

	return tg.RunTelegram(ctx, tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			a.relay.Bind(rt.Bot)
			a.readiness.MarkReady()
			return nil
		},
		OnStop: func(_ context.Context, _ tg.Runtime) error {
			a.readiness.MarkDown()
			return nil
		},
	})
}

func identity(c tele.Context) session.Identity {
	id := session.Identity{UserID: c.Sender().ID}
	if chat := c.Chat(); chat != nil {
		id.ChatID = chat.ID
	}
	return id
}

func (a *App) textCommand(text string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return a.handle(c, flow.Event{Identity: identity(c), Text: text})
	}
}

func (a *App) onText(c tele.Context) error {
	return a.handle(c, flow.Event{Identity: identity(c), Text: c.Text()})
}

func (a *App) onContact(c tele.Context) error {
	ev := flow.Event{Identity: identity(c), HasContact: true}
	if contact := c.Message().Contact; contact != nil {
		ev.Contact = contact.PhoneNumber
	}
	return a.handle(c, ev)
}

func (a *App) onMedia(c tele.Context) error {
	msg := c.Message()
	att := relay.Attachment{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	}
	switch {
	case msg.Document != nil:
		att.Kind = relay.KindDocument
	case msg.Photo != nil:
		att.Kind = relay.KindPhoto
	case msg.Audio != nil:
		att.Kind = relay.KindAudio
	case msg.Video != nil:
		att.Kind = relay.KindVideo
	case msg.Voice != nil:
		att.Kind = relay.KindVoice
	}
	return a.handle(c, flow.Event{Identity: identity(c), Attachment: &att})
}

// handle runs one event through the engine and sends whatever it returned.
// Engine errors are reported after the replies go out so the user always
// sees the error message the engine chose.
func (a *App) handle(c tele.Context, ev flow.Event) error {
	a.metrics.UpdatesReceived.Inc()

	ctx := tghelpers.BuildContext(c)
	rs, err := a.engine.Handle(ctx, ev)
	if sendErr := a.send(c, rs); sendErr != nil && err == nil {
		err = sendErr
	}
	if err != nil {
		a.metrics.HandlerErrors.Inc()
	}
	return err
}

func (a *App) send(c tele.Context, rs []flow.Reply) error {
	for _, r := range rs {
		if err := a.sendOne(c, r); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) sendOne(c tele.Context, r flow.Reply) error {
	if r.Document != nil {
		doc := &tele.Document{
			File:     tele.FromReader(bytes.NewReader(r.Document.Data)),
			FileName: r.Document.Name,
			Caption:  r.Document.Caption,
		}
		opts := &tele.SendOptions{}
		if r.HTML {
			opts.ParseMode = tele.ModeHTML
		}
		return tghelpers.SendDocument(c, doc, opts)
	}

	var markup *tele.ReplyMarkup
	switch {
	case r.ContactRequest && len(r.Keyboard) > 0 && len(r.Keyboard[0]) > 0:
		markup = keyboard.ContactButton(r.Keyboard[0][0])
	case len(r.Keyboard) > 0:
		markup = keyboard.ReplyButtons(r.Keyboard...)
	case r.RemoveKeyboard:
		markup = keyboard.RemoveKeyboard()
	}

	if r.HTML {
		return tghelpers.SendHTML(c, r.Text, markup)
	}
	return tghelpers.SendText(c, r.Text, &tele.SendOptions{ReplyMarkup: markup})
}
