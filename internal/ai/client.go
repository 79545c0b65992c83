package ai

import (
	"context"

	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
	"github.com/sashabaranov/go-openai"
)

// MaxTokens bounds the length of a single generation.
const MaxTokens = 4096

// Client is an Engine backed by an OpenAI-compatible completion API.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient constructs a Client. baseURL may be empty to use the default API
// endpoint; tests and local inference servers point it elsewhere.
func NewClient(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *Client) request(systemPrompt string, blocks []ContentBlock) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(blocks)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, block := range blocks {
		role := openai.ChatMessageRoleUser
		if block.Role == models.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: block.Text,
		})
	}
	return openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
		Model:     c.model,
		MaxTokens: MaxTokens,
		Messages:  messages,
	}
}

// OpenStream implements Engine. Token usage is requested so that the final
// stream chunk carries the generation's usage metadata.
func (c *Client) OpenStream(ctx context.Context, systemPrompt string, blocks []ContentBlock) (ChunkStream, error) {
	req := c.request(systemPrompt, blocks)
	req.StreamOptions = &openai.StreamOptions{IncludeUsage: true}

	stream, err := c.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "create chat completion stream")
	}
	return &openaiChunkStream{stream: stream}, nil
}

// Complete implements Engine.
func (c *Client) Complete(ctx context.Context, systemPrompt string, blocks []ContentBlock) (string, error) {
	completion, err := c.client.CreateChatCompletion(ctx, c.request(systemPrompt, blocks))
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

type openaiChunkStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openaiChunkStream) Recv() (Chunk, error) {
	response, err := s.stream.Recv()
	if err != nil {
		// io.EOF passes through to signal normal completion.
		return Chunk{}, err
	}

	var chunk Chunk
	if len(response.Choices) > 0 {
		chunk.Text = response.Choices[0].Delta.Content
	}
	if response.Usage != nil {
		usage := models.NewTokenUsage(response.Usage.PromptTokens, response.Usage.CompletionTokens)
		chunk.Usage = &usage
	}
	return chunk, nil
}

func (s *openaiChunkStream) Close() error {
	return s.stream.Close()
}
