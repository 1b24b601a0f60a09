package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) ModelName() string {
	return c.modelName
}

func (c *OpenAIClient) GenerateDigest(messages []MessageInput) (*Digest, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	userPrompt := "Messages:\n" + formatTranscript(messages)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model:     c.model,
		MaxTokens: openai.Int(maxDigestTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(digestSystemPrompt),
			openai.UserMessage(userPrompt),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return extractDigest(resp.Choices[0].Message.Content), nil
}
