package digest

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sam-grant/slacker/internal/model"
	"github.com/sam-grant/slacker/internal/report"
	"github.com/sam-grant/slacker/pkg/llm"
	"github.com/sam-grant/slacker/pkg/slackchat"
)

type HistoryFetcher interface {
	FetchHistory(channelID string, window slackchat.Window) ([]slackchat.Message, error)
}

type Generator interface {
	GenerateDigest(messages []llm.MessageInput) (*llm.Digest, error)
	ModelName() string
}

type Poster interface {
	PostDigest(channelID string, digest *llm.Digest, window slackchat.Window) error
}

type DigestStore interface {
	SaveDigest(digest *model.ChannelDigest) error
}

// Pipeline runs one fetch -> generate -> write -> post -> store sequence.
// Store is optional; nil disables persistence.
type Pipeline struct {
	fetcher   HistoryFetcher
	generator Generator
	poster    Poster
	store     DigestStore
}

func NewPipeline(fetcher HistoryFetcher, generator Generator, poster Poster, store DigestStore) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		generator: generator,
		poster:    poster,
		store:     store,
	}
}

type Options struct {
	ChannelID  string
	Window     slackchat.Window
	OutputPath string
	Post       bool
}

// RunResult reports each step's outcome individually; the error from Run
// carries the failing step's name.
type RunResult struct {
	MessageCount int
	Digest       *llm.Digest // nil for a no-messages run
	Saved        bool
	Published    bool
	Stored       bool
}

func (p *Pipeline) Run(opts Options) (*RunResult, error) {
	result := &RunResult{}

	messages, err := p.fetcher.FetchHistory(opts.ChannelID, opts.Window)
	if err != nil {
		return result, fmt.Errorf("fetch history: %w", err)
	}
	result.MessageCount = len(messages)
	slog.Info("history fetched", "channel", opts.ChannelID, "messages", len(messages))

	generated, err := p.generator.GenerateDigest(toInputs(messages))
	if err != nil && !errors.Is(err, llm.ErrNoMessages) {
		return result, fmt.Errorf("generate digest: %w", err)
	}
	result.Digest = generated

	if err := report.Write(opts.OutputPath, messages, generated); err != nil {
		return result, fmt.Errorf("write artifact: %w", err)
	}
	result.Saved = true

	if generated == nil {
		slog.Info("no messages in window, skipping publish", "channel", opts.ChannelID)
		return result, nil
	}

	if opts.Post {
		if err := p.poster.PostDigest(opts.ChannelID, generated, opts.Window); err != nil {
			return result, fmt.Errorf("post digest: %w", err)
		}
		result.Published = true
	}

	if p.store != nil {
		row := &model.ChannelDigest{
			ChannelID:    opts.ChannelID,
			WindowStart:  opts.Window.Start,
			WindowEnd:    opts.Window.End,
			Summary:      generated.Summary,
			ActionItems:  generated.ActionItems,
			Decisions:    generated.Decisions,
			MessageCount: len(messages),
			ModelUsed:    p.generator.ModelName(),
			CreatedAt:    time.Now(),
		}
		if err := p.store.SaveDigest(row); err != nil {
			return result, fmt.Errorf("save digest: %w", err)
		}
		result.Stored = true
	}

	return result, nil
}

func toInputs(messages []slackchat.Message) []llm.MessageInput {
	inputs := make([]llm.MessageInput, len(messages))
	for i, m := range messages {
		inputs[i] = llm.MessageInput{
			Timestamp: m.Timestamp,
			Text:      m.Text,
		}
	}
	return inputs
}
