package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ClientConfig carries everything the completion client needs at
// construction time. The API key is injected here, never read from
// package state.
type ClientConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	TopP             float64
	FrequencyPenalty float64
	Timeout          time.Duration
}

// Client is a stateless adapter around the chat-completions API. It
// sends exactly one request per Complete call; retry belongs to the
// pipeline so transport and schema failures share one policy.
type Client struct {
	api              *openai.Client
	model            string
	timeout          time.Duration
	topP             float64
	frequencyPenalty float64
}

func NewClient(cfg ClientConfig) (*Client, error) {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	c := &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		// Conservative defaults: near-greedy sampling, mild
		// repetition penalty.
		topP:             0.05,
		frequencyPenalty: 0.4,
	}
	if cfg.Model == "" {
		c.model = openai.GPT3Dot5Turbo
	}
	if cfg.Timeout == 0 {
		c.timeout = 30 * time.Second
	}
	// A zero value means the parameter was left unset; keep the
	// default rather than failing validation on it.
	topP, frequencyPenalty := c.topP, c.frequencyPenalty
	if cfg.TopP != 0 {
		topP = cfg.TopP
	}
	if cfg.FrequencyPenalty != 0 {
		frequencyPenalty = cfg.FrequencyPenalty
	}
	if err := c.SetParams(topP, frequencyPenalty); err != nil {
		return nil, err
	}
	return c, nil
}

// SetParams updates the sampling parameters. topP must be in (0, 1]
// and frequencyPenalty in [-2, 2]; an out-of-range pair is rejected
// without touching the previous valid configuration.
func (c *Client) SetParams(topP, frequencyPenalty float64) error {
	if topP <= 0 || topP > 1 {
		return fmt.Errorf("top_p must be in (0, 1], got %v", topP)
	}
	if frequencyPenalty < -2 || frequencyPenalty > 2 {
		return fmt.Errorf("frequency_penalty must be in [-2, 2], got %v", frequencyPenalty)
	}
	c.topP = topP
	c.frequencyPenalty = frequencyPenalty
	return nil
}

// Complete sends the numbered artifact to the completion service and
// returns the raw response text. Any provider or transport failure,
// including the per-call timeout, comes back as *TransportError.
func (c *Client) Complete(ctx context.Context, numbered string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: numbered},
		},
		TopP:             float32(c.topP),
		FrequencyPenalty: float32(c.frequencyPenalty),
	})
	if err != nil {
		return "", &TransportError{Message: err.Error(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &TransportError{Message: "provider returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}
