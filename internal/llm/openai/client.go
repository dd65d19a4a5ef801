package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"coreselect/internal/llm"
	"coreselect/internal/shared/telemetry"
	"coreselect/internal/shared/util"
)

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	client oai.Client
	model  string
}

// NewClient constructs a new OpenAI client. baseURL may be empty.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{
		client: oai.NewClient(opts...),
		model:  model,
	}, nil
}

// Complete sends the prompt pair and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, input llm.CompleteInput) (string, error) {
	messages := make([]oai.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(input.System) != "" {
		messages = append(messages, oai.SystemMessage(input.System))
	}
	messages = append(messages, oai.UserMessage(input.User))

	params := oai.ChatCompletionNewParams{
		Messages: messages,
		Model:    oai.ChatModel(c.model),
	}
	if !isGPT5(c.model) {
		params.Temperature = oai.Float(0)
	}
	if input.JSON {
		params.ResponseFormat = oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &oai.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *oai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai: http status %d: %w", apiErr.StatusCode, err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}

	telemetry.Info("llm.response", map[string]any{
		"model":             c.model,
		"prompt_hash":       util.HashKey(input.System + "\n\n" + input.User),
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})
	return content, nil
}

// gpt-5 models reject a custom temperature.
func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

var _ llm.Client = (*Client)(nil)
