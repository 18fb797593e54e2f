package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// AIService drafts news excerpts with OpenAI.
type AIService struct {
	client *openai.Client
}

// NewAIService creates an AIService. An empty key leaves it unconfigured.
func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return &AIService{}
	}
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithConfig creates an AIService against a custom endpoint.
func NewAIServiceWithConfig(config openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(config),
	}
}

// Configured reports whether an API key was provided.
func (s *AIService) Configured() bool {
	return s != nil && s.client != nil
}

// GenerateExcerpt summarizes an article body into a short teaser
func (s *AIService) GenerateExcerpt(ctx context.Context, content string) (string, error) {
	if !s.Configured() {
		return "", ErrAIServiceNotConfigured
	}

	prompt := fmt.Sprintf(`You write teasers for an alumni association's news page.
Summarize the article below in one or two sentences, at most %d characters.
Keep the article's language. Return only the teaser text, without quotes.

Article:
%s`, excerptLength, content)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrAIEmptyResponse
	}

	excerpt := strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"`)
	if excerpt == "" {
		return "", ErrAIEmptyResponse
	}

	return excerpt, nil
}
