package slackchat

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/sam-grant/slacker/pkg/llm"
)

// BuildDigestBlocks renders a digest as Block Kit blocks: a header with the
// window's time range, a divider, the summary, then action items and key
// decisions. The last two are omitted when empty.
func BuildDigestBlocks(digest *llm.Digest, window Window) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, "📋 Slack Digest: "+window.String(), true, false),
		),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Summary:*\n"+digest.Summary, false, false),
			nil, nil,
		),
	}

	if len(digest.ActionItems) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Action Items:*\n"+bulleted(digest.ActionItems), false, false),
			nil, nil,
		))
	}

	if len(digest.Decisions) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Key Decisions:*\n"+bulleted(digest.Decisions), false, false),
			nil, nil,
		))
	}

	return blocks
}

func bulleted(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}
