package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Recognizer turns an image into the text it contains.
type Recognizer interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

const transcribePrompt = "Transcribe every piece of text visible in this image, verbatim. Respond with the text only, no commentary. If the image contains no readable text, respond with an empty message."

// OpenAIRecognizer transcribes page images through the vision-capable chat
// API, the same wiring used for medical image analysis elsewhere.
type OpenAIRecognizer struct {
	API   *openai.Client
	Model string
}

func NewOpenAIRecognizer(api *openai.Client, model string) *OpenAIRecognizer {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIRecognizer{API: api, Model: model}
}

func (r *OpenAIRecognizer) RecognizeText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("empty image")
	}
	dataURL := "data:" + http.DetectContentType(image) + ";base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := r.API.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: transcribePrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
						URL:    dataURL,
						Detail: openai.ImageURLDetailAuto,
					}},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("vision response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
