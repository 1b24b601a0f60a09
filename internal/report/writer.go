package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sam-grant/slacker/pkg/llm"
	"github.com/sam-grant/slacker/pkg/slackchat"
)

const (
	messagesHeader = "=== Original Messages ==="
	summaryHeader  = "=== Summary ==="
	timeFormat     = "2006-01-02 15:04:05"
)

// Write overwrites path with a transcript of the original messages followed
// by the digest as indented JSON. A nil digest records the no-messages
// sentinel text in place of the JSON object. No partial-write cleanup: an
// interrupted run may leave a truncated file.
func Write(path string, messages []slackchat.Message, digest *llm.Digest) error {
	var sb strings.Builder

	sb.WriteString(messagesHeader + "\n\n")
	for _, m := range messages {
		fmt.Fprintf(&sb, "%s: %s\n", m.Timestamp.Format(timeFormat), m.Text)
	}
	sb.WriteString("\n" + summaryHeader + "\n\n")

	var payload any = digest
	if digest == nil {
		payload = llm.NoMessagesText
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode digest: %w", err)
	}
	sb.Write(encoded)
	sb.WriteString("\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write summary file: %w", err)
	}

	return nil
}
