package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sam-grant/slacker/db"
	"github.com/sam-grant/slacker/internal/digest"
	"github.com/sam-grant/slacker/internal/repository"
	"github.com/sam-grant/slacker/pkg/llm"
	"github.com/sam-grant/slacker/pkg/slackchat"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var (
		channelID   string
		windowHours int
		outputPath  string
		post        bool
	)

	root := &cobra.Command{
		Use:           "slacker",
		Short:         "Digest a Slack channel's recent history with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(channelID, windowHours, outputPath, post)
		},
	}

	root.Flags().StringVarP(&channelID, "channel", "c", "", "Slack channel ID to digest (required)")
	root.MarkFlagRequired("channel")
	root.Flags().IntVarP(&windowHours, "hours", "H", 7*24, "window length in hours, ending now")
	root.Flags().StringVarP(&outputPath, "out", "o", "", "artifact path (default slack_summary_<timestamp>.txt)")
	root.Flags().BoolVarP(&post, "post", "p", false, "post the digest back to the channel")

	if err := root.Execute(); err != nil {
		slog.Error("digest run failed", "error", err)
		os.Exit(1)
	}
}

func run(channelID string, windowHours int, outputPath string, post bool) error {
	slackToken := os.Getenv("SLACK_BOT_TOKEN")
	if slackToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is not set")
	}

	var generator digest.Generator
	switch {
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		generator = llm.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"))
	case os.Getenv("OPENAI_API_KEY") != "":
		generator = llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
	default:
		return fmt.Errorf("no LLM API key configured (set ANTHROPIC_API_KEY or OPENAI_API_KEY)")
	}

	var store digest.DigestStore
	if os.Getenv("DATABASE_URL") != "" {
		conn, err := db.Connect()
		if err != nil {
			return fmt.Errorf("error connecting to DB: %w", err)
		}
		defer conn.Close()
		store = repository.NewDigestRepository(conn)
	}

	end := time.Now()
	window := slackchat.Window{
		Start: end.Add(-time.Duration(windowHours) * time.Hour),
		End:   end,
	}

	if outputPath == "" {
		outputPath = fmt.Sprintf("slack_summary_%s.txt", end.Format("20060102_1504"))
	}

	client := slackchat.New(slackToken)
	pipeline := digest.NewPipeline(client, generator, client, store)

	result, err := pipeline.Run(digest.Options{
		ChannelID:  channelID,
		Window:     window,
		OutputPath: outputPath,
		Post:       post,
	})
	if err != nil {
		return err
	}

	slog.Info("digest run complete",
		"channel", channelID,
		"messages", result.MessageCount,
		"output", outputPath,
		"published", result.Published,
		"stored", result.Stored,
		"model", generator.ModelName(),
	)
	return nil
}
