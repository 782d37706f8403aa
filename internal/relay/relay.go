// Package relay forwards submission attachments to the review channel.
package relay

import "context"

// Kind names the attachment kinds the bot accepts for submissions.
type Kind string

const (
	KindDocument Kind = "document"
	KindPhoto    Kind = "photo"
	KindAudio    Kind = "audio"
	KindVideo    Kind = "video"
	KindVoice    Kind = "voice"
)

// Accepted reports whether the kind belongs to the accepted set.
func (k Kind) Accepted() bool {
	switch k {
	case KindDocument, KindPhoto, KindAudio, KindVideo, KindVoice:
		return true
	}
	return false
}

// Attachment identifies the raw inbound message carrying the submission file.
// The Telegram implementation forwards it by (chat, message) reference, so no
// file content ever passes through this process.
type Attachment struct {
	Kind      Kind
	ChatID    int64
	MessageID int
}

// Ref is the permanent reference returned after a successful forward.
type Ref struct {
	// URL is the permanent link stored on the submission record.
	URL string
	// MessageID is the forwarded message in the destination, used to anchor
	// the announce reply.
	MessageID int
}

// Relay forwards an attachment to the fixed review destination and posts a
// human-readable summary next to it. Both calls are best-effort single
// attempts; failures surface as errors and are never retried here.
type Relay interface {
	Forward(ctx context.Context, att Attachment) (Ref, error)
	Announce(ctx context.Context, ref Ref, text string) error
}
