package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI accepts at most four stop sequences per request.
const maxStopSequences = 4

func clampStop(stop []string) []string {
	if len(stop) > maxStopSequences {
		return stop[:maxStopSequences]
	}
	return stop
}

// ChatStrategy invokes the model through the chat completions API and
// unwraps the first choice's message content.
type ChatStrategy struct {
	API       *openai.Client
	Model     string
	MaxTokens int
}

func (s *ChatStrategy) Name() string { return "chat_completion" }

func (s *ChatStrategy) Invoke(ctx context.Context, prompt string, stop []string) (string, error) {
	resp, err := s.API.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.Model,
		MaxTokens: s.MaxTokens,
		Stop:      clampStop(stop),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompletionStrategy invokes the legacy text completions API and unwraps the
// first choice's text. Kept second in the default order for engines that
// only expose the older surface.
type CompletionStrategy struct {
	API       *openai.Client
	Model     string
	MaxTokens int
}

func (s *CompletionStrategy) Name() string { return "completion" }

func (s *CompletionStrategy) Invoke(ctx context.Context, prompt string, stop []string) (string, error) {
	resp, err := s.API.CreateCompletion(ctx, openai.CompletionRequest{
		Model:     s.Model,
		MaxTokens: s.MaxTokens,
		Stop:      clampStop(stop),
		Prompt:    prompt,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Text, nil
}
