package domain

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one entry of the append-only chat transcript.
// IDs are ULIDs drawn from a monotonic source, so sorting by ID
// reproduces send order even within the same millisecond.
type ChatMessage struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Sender Sender    `json:"sender"`
	SentAt time.Time `json:"sentAt"`
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewMessageID returns a new monotonic message identifier for time t.
func NewMessageID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), idEntropy).String()
}

// NewChatMessage builds a message stamped with the current time.
func NewChatMessage(sender Sender, text string) ChatMessage {
	now := time.Now()
	return ChatMessage{
		ID:     NewMessageID(now),
		Text:   text,
		Sender: sender,
		SentAt: now,
	}
}
