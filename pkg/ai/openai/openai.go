package openai

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client talks to an OpenAI-compatible completion and embedding endpoint.
// Hosted providers exposing the same wire API (e.g. Groq) work by setting
// a custom base URL.
//
// A Client should be created using NewClient.
type Client struct {
	chatModel      string
	embeddingModel string

	api *openai.Client
}

// NewClientParams defines the configuration parameters for creating a
// new Client.
//
// ChatModel is used for all completion requests, EmbeddingModel for
// embeddings. BaseURL may be empty for the default OpenAI endpoint.
type NewClientParams struct {
	ChatModel      string
	EmbeddingModel string

	BaseURL string
	APIKey  string
}

// NewClient creates and returns a new Client configured with the provided
// parameters.
//
// Example:
//
//	client := openai.NewClient(openai.NewClientParams{
//		ChatModel:      "gpt-4o-mini",
//		EmbeddingModel: "text-embedding-3-small",
//		APIKey:         os.Getenv("OPENAI_API_KEY"),
//	})
func NewClient(params NewClientParams) *Client {
	options := []option.RequestOption{
		option.WithAPIKey(params.APIKey),
	}
	if params.BaseURL != "" {
		options = append(options, option.WithBaseURL(params.BaseURL))
	}
	api := openai.NewClient(options...)

	return &Client{
		chatModel:      params.ChatModel,
		embeddingModel: params.EmbeddingModel,
		api:            &api,
	}
}
