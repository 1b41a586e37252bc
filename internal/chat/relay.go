package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// BusyMessage is returned when both upstreams are unavailable.
const BusyMessage = "Service is temporarily busy. Please try again later."

// Completer produces a reply for a prompt from a text-generation upstream.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// OpenAICompleter is a Completer backed by an OpenAI-compatible endpoint.
type OpenAICompleter struct {
	client *openai.Client
}

// NewOpenAICompleter creates a completer for one credential. baseURL may
// point at any OpenAI-compatible service.
func NewOpenAICompleter(apiKey, baseURL string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompleter{client: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAICompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("upstream returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Relay forwards prompts to a primary upstream and falls back to a secondary
// one when the primary is temporarily unavailable. Every outcome, success or
// failure, is a normal reply value; Send never returns an error.
type Relay struct {
	primary   Completer
	secondary Completer
	model     string
}

// NewRelay creates a Relay over two upstream credentials.
func NewRelay(primary, secondary Completer, model string) *Relay {
	return &Relay{primary: primary, secondary: secondary, model: model}
}

// Send resolves a prompt to a reply. The outcome is one of: the primary's
// reply, the secondary's reply after a temporary primary failure, a fixed
// busy message when both upstreams fail, or "Error: <message>" for any other
// primary failure. Successful replies are rendered to HTML when asMarkdown
// is set.
func (r *Relay) Send(ctx context.Context, prompt string, asMarkdown bool) string {
	reply, err := r.primary.Complete(ctx, r.model, prompt)
	if err != nil {
		if !isTemporarilyUnavailable(err) {
			return "Error: " + err.Error()
		}

		log.Warn().Err(err).Msg("Primary chat upstream unavailable, trying secondary")
		reply, err = r.secondary.Complete(ctx, r.model, prompt)
		if err != nil {
			log.Error().Err(err).Msg("Secondary chat upstream failed")
			return BusyMessage
		}
	}

	if asMarkdown {
		reply = string(markdown.ToHTML([]byte(reply), nil, nil))
	}
	return reply
}

// isTemporarilyUnavailable reports whether an upstream error looks like a
// transient outage worth retrying on the secondary credential. Structured
// API errors are checked by status code; the substring match is the
// compatibility floor for wrapped or non-API errors.
func isTemporarilyUnavailable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusServiceUnavailable
	}
	msg := err.Error()
	return strings.Contains(msg, "503") || strings.Contains(msg, "Service temporarily unavailable")
}
