package slackchat

import (
	"fmt"
	"strconv"
	"time"

	"github.com/slack-go/slack"
)

const historyPageSize = 100

// FetchHistory returns every message posted to the channel within the window,
// in the order Slack returns them (newest first). Pages of historyPageSize
// are followed via the continuation cursor until Slack reports no more.
func (c *Client) FetchHistory(channelID string, window Window) ([]Message, error) {
	params := &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Oldest:    slackTimestamp(window.Start),
		Latest:    slackTimestamp(window.End),
		Limit:     historyPageSize,
	}

	var messages []Message
	for {
		resp, err := c.api.GetConversationHistory(params)
		if err != nil {
			return nil, fmt.Errorf("slack history fetch: %w", err)
		}

		for _, m := range resp.Messages {
			messages = append(messages, Message{
				Timestamp: parseSlackTimestamp(m.Timestamp),
				Text:      m.Text,
			})
		}

		if !resp.HasMore {
			break
		}
		params.Cursor = resp.ResponseMetaData.NextCursor
	}

	return messages, nil
}

func slackTimestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixMicro())/1e6, 'f', 6, 64)
}

func parseSlackTimestamp(ts string) time.Time {
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}
	}
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9))
}
