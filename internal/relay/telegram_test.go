package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type stubAPI struct {
	forwardedTo  string
	forwardedMsg tele.Editable
	forwardErr   error
	forwardID    int
	sentTo       string
	sentText     string
	sentOpts     *tele.SendOptions
	sendErr      error
}

func (s *stubAPI) Forward(to tele.Recipient, msg tele.Editable, _ ...interface{}) (*tele.Message, error) {
	s.forwardedTo = to.Recipient()
	s.forwardedMsg = msg
	if s.forwardErr != nil {
		return nil, s.forwardErr
	}
	return &tele.Message{ID: s.forwardID}, nil
}

func (s *stubAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	s.sentTo = to.Recipient()
	s.sentText, _ = what.(string)
	for _, o := range opts {
		if so, ok := o.(*tele.SendOptions); ok {
			s.sentOpts = so
		}
	}
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &tele.Message{ID: 1}, nil
}

func TestForwardPrivateChannelPermalink(t *testing.T) {
	api := &stubAPI{forwardID: 42}
	r := NewTelegram("-1001234567890")
	r.Bind(api)

	ref, err := r.Forward(context.Background(), Attachment{Kind: KindDocument, ChatID: 7, MessageID: 15})
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/c/1234567890/42", ref.URL)
	assert.Equal(t, 42, ref.MessageID)
	assert.Equal(t, "-1001234567890", api.forwardedTo)

	stored, ok := api.forwardedMsg.(tele.StoredMessage)
	require.True(t, ok)
	assert.Equal(t, "15", stored.MessageID)
	assert.Equal(t, int64(7), stored.ChatID)
}

func TestForwardPublicChannelPermalink(t *testing.T) {
	api := &stubAPI{forwardID: 9}
	r := NewTelegram("@tanlov_channel")
	r.Bind(api)

	ref, err := r.Forward(context.Background(), Attachment{Kind: KindPhoto, ChatID: 1, MessageID: 2})
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/tanlov_channel/9", ref.URL)
}

func TestForwardUnboundBot(t *testing.T) {
	r := NewTelegram("-1001")
	_, err := r.Forward(context.Background(), Attachment{Kind: KindAudio, ChatID: 1, MessageID: 1})
	assert.Error(t, err)
}

func TestForwardErrorWrapped(t *testing.T) {
	sentinel := errors.New("chat not found")
	api := &stubAPI{forwardErr: sentinel}
	r := NewTelegram("-1001")
	r.Bind(api)

	_, err := r.Forward(context.Background(), Attachment{Kind: KindVideo, ChatID: 1, MessageID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestAnnounceRepliesToForwardedMessage(t *testing.T) {
	api := &stubAPI{}
	r := NewTelegram("-1001234567890")
	r.Bind(api)

	err := r.Announce(context.Background(), Ref{MessageID: 42}, "<b>summary</b>")
	require.NoError(t, err)
	assert.Equal(t, "<b>summary</b>", api.sentText)
	require.NotNil(t, api.sentOpts)
	assert.Equal(t, tele.ModeHTML, api.sentOpts.ParseMode)
	require.NotNil(t, api.sentOpts.ReplyTo)
	assert.Equal(t, 42, api.sentOpts.ReplyTo.ID)
}

func TestAnnounceErrorWrapped(t *testing.T) {
	sentinel := errors.New("blocked")
	api := &stubAPI{sendErr: sentinel}
	r := NewTelegram("@ch")
	r.Bind(api)

	err := r.Announce(context.Background(), Ref{MessageID: 1}, "x")
	assert.ErrorIs(t, err, sentinel)
}

func TestKindAccepted(t *testing.T) {
	for _, k := range []Kind{KindDocument, KindPhoto, KindAudio, KindVideo, KindVoice} {
		assert.True(t, k.Accepted(), string(k))
	}
	assert.False(t, Kind("sticker").Accepted())
	assert.False(t, Kind("").Accepted())
}
