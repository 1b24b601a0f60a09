package llm

import (
	"errors"
	"time"
)

const maxDigestTokens = 1024

// ErrNoMessages is returned by digest clients when there is nothing to
// summarize. No service call is made in that case.
var ErrNoMessages = errors.New("no messages found in the specified timeframe")

// NoMessagesText is the human-readable form of ErrNoMessages, recorded in the
// artifact file in place of a digest.
const NoMessagesText = "No messages found in the specified timeframe."

type MessageInput struct {
	Timestamp time.Time
	Text      string
}

type Digest struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
	Decisions   []string `json:"decisions"`
}

type DigestClient interface {
	GenerateDigest(messages []MessageInput) (*Digest, error)
	ModelName() string
}
