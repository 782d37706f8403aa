package flow

import (
	"github.com/bagrikeng/tanlovbot/internal/relay"
	"github.com/bagrikeng/tanlovbot/internal/session"
)

// Event is a single inbound update, already stripped of transport detail.
// Exactly one of Text, Contact or Attachment carries the payload.
type Event struct {
	Identity session.Identity

	Text       string
	Contact    string
	HasContact bool
	Attachment *relay.Attachment
}

// Reply is one outbound message. The transport layer turns Keyboard rows
// into reply-keyboard buttons and Document into a file upload.
type Reply struct {
	Text           string
	HTML           bool
	Keyboard       [][]string
	ContactRequest bool
	RemoveKeyboard bool
	Document       *Document
}

// Document is a file sent back to the chat, used by the admin export.
type Document struct {
	Name    string
	Caption string
	Data    []byte
}

func replies(rs ...Reply) []Reply { return rs }
