package slackchat

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/sam-grant/slacker/pkg/llm"
)

// PostDigest renders the digest and posts it to the channel. No retry on
// failure.
func (c *Client) PostDigest(channelID string, digest *llm.Digest, window Window) error {
	blocks := BuildDigestBlocks(digest, window)

	_, _, err := c.api.PostMessage(channelID, slack.MsgOptionBlocks(blocks...))
	if err != nil {
		return fmt.Errorf("slack post: %w", err)
	}

	return nil
}
