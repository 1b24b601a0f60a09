package slackchat

import (
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

const windowTimeFormat = "January 2, 2006 15:04"

// Message is a single channel message with its timestamp resolved from
// Slack's epoch-seconds "ts" field.
type Message struct {
	Timestamp time.Time
	Text      string
}

// Window is the half-open time interval [Start, End) bounding a fetch.
// Callers keep Start <= End.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format(windowTimeFormat), w.End.Format(windowTimeFormat))
}

// Client wraps the Slack Web API for history reads and digest posts.
type Client struct {
	api *slack.Client
}

func New(token string, opts ...slack.Option) *Client {
	return &Client{api: slack.New(token, opts...)}
}
