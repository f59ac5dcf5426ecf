package embedding

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider encodes queries with the OpenAI embeddings API.
type OpenAIProvider struct {
	API   *openai.Client
	Model openai.EmbeddingModel
}

func NewOpenAIProvider(api *openai.Client, model openai.EmbeddingModel) *OpenAIProvider {
	if model == "" {
		model = openai.SmallEmbedding3
	}
	return &OpenAIProvider{API: api, Model: model}
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.API.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: p.Model,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}
