package digest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/sam-grant/slacker/internal/model"
	"github.com/sam-grant/slacker/pkg/llm"
	"github.com/sam-grant/slacker/pkg/slackchat"
)

type fakeFetcher struct {
	messages []slackchat.Message
	err      error
}

func (f *fakeFetcher) FetchHistory(channelID string, window slackchat.Window) ([]slackchat.Message, error) {
	return f.messages, f.err
}

type fakeGenerator struct {
	digest *llm.Digest
	err    error
	calls  int
}

func (f *fakeGenerator) GenerateDigest(messages []llm.MessageInput) (*llm.Digest, error) {
	f.calls++
	if len(messages) == 0 {
		return nil, llm.ErrNoMessages
	}
	return f.digest, f.err
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }

type fakePoster struct {
	err   error
	calls int
}

func (f *fakePoster) PostDigest(channelID string, digest *llm.Digest, window slackchat.Window) error {
	f.calls++
	return f.err
}

type fakeStore struct {
	saved []model.ChannelDigest
	err   error
}

func (f *fakeStore) SaveDigest(digest *model.ChannelDigest) error {
	if f.err != nil {
		return f.err
	}
	digest.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, *digest)
	return nil
}

func testMessages(n int) []slackchat.Message {
	messages := make([]slackchat.Message, n)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i := range messages {
		messages[i] = slackchat.Message{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Text:      "message",
		}
	}
	return messages
}

func testWindow() slackchat.Window {
	end := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	return slackchat.Window{Start: end.Add(-24 * time.Hour), End: end}
}

func TestRunFullPipeline(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "summary.txt")
	fetcher := &fakeFetcher{messages: testMessages(3)}
	generator := &fakeGenerator{digest: &llm.Digest{
		Summary:     "Team aligned on X",
		ActionItems: []string{"Alice: ship Y"},
		Decisions:   []string{"Adopt Z"},
	}}
	poster := &fakePoster{}
	store := &fakeStore{}

	p := NewPipeline(fetcher, generator, poster, store)

	result, err := p.Run(Options{
		ChannelID:  "C07DXJHBVR9",
		Window:     testWindow(),
		OutputPath: outputPath,
		Post:       true,
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, result.MessageCount)
	assert.Equal(t, "Team aligned on X", result.Digest.Summary)
	assert.Equal(t, true, result.Saved)
	assert.Equal(t, true, result.Published)
	assert.Equal(t, true, result.Stored)
	assert.Equal(t, 1, poster.calls)
	assert.Equal(t, 1, len(store.saved))
	assert.Equal(t, "fake-model", store.saved[0].ModelUsed)
	assert.Equal(t, 3, store.saved[0].MessageCount)

	data, readErr := os.ReadFile(outputPath)
	assert.Equal(t, nil, readErr)
	assert.Equal(t, true, strings.Contains(string(data), "=== Summary ==="))
}

func TestRunFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("rate limited")}
	generator := &fakeGenerator{}
	p := NewPipeline(fetcher, generator, &fakePoster{}, nil)

	result, err := p.Run(Options{
		ChannelID:  "C07DXJHBVR9",
		Window:     testWindow(),
		OutputPath: filepath.Join(t.TempDir(), "summary.txt"),
	})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "fetch history"))
	assert.Equal(t, false, result.Saved)
	assert.Equal(t, 0, generator.calls)
}

func TestRunNoMessages(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "summary.txt")
	fetcher := &fakeFetcher{}
	generator := &fakeGenerator{}
	poster := &fakePoster{}
	store := &fakeStore{}

	p := NewPipeline(fetcher, generator, poster, store)

	result, err := p.Run(Options{
		ChannelID:  "C07DXJHBVR9",
		Window:     testWindow(),
		OutputPath: outputPath,
		Post:       true,
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, result.MessageCount)
	assert.Equal(t, (*llm.Digest)(nil), result.Digest)
	assert.Equal(t, true, result.Saved)
	assert.Equal(t, false, result.Published)
	assert.Equal(t, false, result.Stored)
	assert.Equal(t, 0, poster.calls)

	data, readErr := os.ReadFile(outputPath)
	assert.Equal(t, nil, readErr)
	assert.Equal(t, true, strings.Contains(string(data), llm.NoMessagesText))
}

func TestRunGeneratorFailure(t *testing.T) {
	fetcher := &fakeFetcher{messages: testMessages(2)}
	generator := &fakeGenerator{err: errors.New("model unavailable")}
	p := NewPipeline(fetcher, generator, &fakePoster{}, nil)

	result, err := p.Run(Options{
		ChannelID:  "C07DXJHBVR9",
		Window:     testWindow(),
		OutputPath: filepath.Join(t.TempDir(), "summary.txt"),
	})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "generate digest"))
	assert.Equal(t, false, result.Saved)
}

func TestRunWriteFailureShortCircuits(t *testing.T) {
	fetcher := &fakeFetcher{messages: testMessages(1)}
	generator := &fakeGenerator{digest: &llm.Digest{Summary: "x"}}
	poster := &fakePoster{}

	p := NewPipeline(fetcher, generator, poster, nil)

	result, err := p.Run(Options{
		ChannelID:  "C07DXJHBVR9",
		Window:     testWindow(),
		OutputPath: filepath.Join(t.TempDir(), "missing", "summary.txt"),
		Post:       true,
	})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "write artifact"))
	assert.Equal(t, false, result.Saved)
	assert.Equal(t, 0, poster.calls)
}

func TestRunPostFailure(t *testing.T) {
	fetcher := &fakeFetcher{messages: testMessages(1)}
	generator := &fakeGenerator{digest: &llm.Digest{Summary: "x"}}
	poster := &fakePoster{err: errors.New("channel_not_found")}
	store := &fakeStore{}

	p := NewPipeline(fetcher, generator, poster, store)

	result, err := p.Run(Options{
		ChannelID:  "C07DXJHBVR9",
		Window:     testWindow(),
		OutputPath: filepath.Join(t.TempDir(), "summary.txt"),
		Post:       true,
	})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "post digest"))
	assert.Equal(t, true, result.Saved)
	assert.Equal(t, false, result.Published)
	assert.Equal(t, 0, len(store.saved))
}

func TestRunWithoutPostSkipsPoster(t *testing.T) {
	fetcher := &fakeFetcher{messages: testMessages(1)}
	generator := &fakeGenerator{digest: &llm.Digest{Summary: "x"}}
	poster := &fakePoster{err: errors.New("should not be called")}

	p := NewPipeline(fetcher, generator, poster, nil)

	result, err := p.Run(Options{
		ChannelID:  "C07DXJHBVR9",
		Window:     testWindow(),
		OutputPath: filepath.Join(t.TempDir(), "summary.txt"),
		Post:       false,
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, true, result.Saved)
	assert.Equal(t, false, result.Published)
	assert.Equal(t, 0, poster.calls)
}
