package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/bagrikeng/tanlovbot/core/logger"
)

// api is the slice of tele.Bot the relay needs; narrowed for tests.
type api interface {
	Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error)
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// channel adapts the configured channel identifier ("@name" or "-100...")
// to a telebot recipient.
type channel string

// Recipient implements tele.Recipient.
func (c channel) Recipient() string { return string(c) }

// Telegram relays submissions into a fixed Telegram channel. The bot handle
// becomes available only after the runtime starts, so it is bound late via
// Bind.
type Telegram struct {
	dest channel
	bot  atomic.Pointer[api]
}

// NewTelegram creates a relay targeting the given channel identifier.
func NewTelegram(channelID string) *Telegram {
	return &Telegram{dest: channel(strings.TrimSpace(channelID))}
}

// Bind attaches the live bot instance. Must be called before the first
// Forward; the runtime does this in its start hook.
func (t *Telegram) Bind(b api) {
	if b == nil {
		return
	}
	t.bot.Store(&b)
}

func (t *Telegram) client() (api, error) {
	p := t.bot.Load()
	if p == nil {
		return nil, fmt.Errorf("relay: bot not bound")
	}
	return *p, nil
}

// Forward copies the original attachment message into the review channel and
// returns its permanent link.
func (t *Telegram) Forward(ctx context.Context, att Attachment) (Ref, error) {
	bot, err := t.client()
	if err != nil {
		return Ref{}, err
	}

	start := time.Now()
	src := tele.StoredMessage{
		MessageID: strconv.Itoa(att.MessageID),
		ChatID:    att.ChatID,
	}
	msg, err := bot.Forward(t.dest, src)
	if err != nil {
		logger.Error(ctx, "relay", "forward.fail",
			slog.String("kind", string(att.Kind)),
			slog.String("dest", string(t.dest)),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return Ref{}, fmt.Errorf("relay forward: %w", err)
	}

	ref := Ref{URL: permalink(string(t.dest), msg.ID), MessageID: msg.ID}
	logger.Debug(ctx, "relay", "forward.ok",
		slog.String("kind", string(att.Kind)),
		slog.String("url", ref.URL),
		slog.Duration("duration", logger.Took(start)),
	)
	return ref, nil
}

// Announce posts the participant summary as a reply to the forwarded message.
func (t *Telegram) Announce(ctx context.Context, ref Ref, text string) error {
	bot, err := t.client()
	if err != nil {
		return err
	}
	_, err = bot.Send(t.dest, text, &tele.SendOptions{
		ParseMode: tele.ModeHTML,
		ReplyTo:   &tele.Message{ID: ref.MessageID},
	})
	if err != nil {
		logger.Error(ctx, "relay", "announce.fail",
			slog.String("dest", string(t.dest)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("relay announce: %w", err)
	}
	return nil
}

// permalink builds the t.me link of a channel message. Private channel ids
// carry a -100 prefix that the link format drops.
func permalink(channelID string, messageID int) string {
	if strings.HasPrefix(channelID, "-100") {
		return fmt.Sprintf("https://t.me/c/%s/%d", strings.TrimPrefix(channelID, "-100"), messageID)
	}
	return fmt.Sprintf("https://t.me/%s/%d", strings.TrimPrefix(channelID, "@"), messageID)
}
