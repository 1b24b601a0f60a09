package llm

import (
	"fmt"
	"strings"
)

const digestSystemPrompt = `You are given a set of Slack messages from a conversation. Provide a digest of these messages for the participants in the conversation.

Please:
1. Introduce yourself
2. Provide a concise summary of the key points discussed
3. Extract specific action items, including who is responsible if mentioned
4. Note any important decisions made

Please be polite, upbeat, and encouraging. Please use emojis!

Format your response as JSON with the following structure:
{
  "summary": "Overall summary here",
  "action_items": ["Action 1", "Action 2"],
  "decisions": ["Decision 1", "Decision 2"]
}`

const transcriptTimeFormat = "2006-01-02 15:04:05"

// formatTranscript renders one "<timestamp>: <text>" line per message, in the
// order the fetcher returned them.
func formatTranscript(messages []MessageInput) string {
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = fmt.Sprintf("%s: %s", m.Timestamp.Format(transcriptTimeFormat), m.Text)
	}
	return strings.Join(lines, "\n")
}
