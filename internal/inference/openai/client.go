// Package openai implements the inference client against the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/morphcards/internal/inference"
)

// maxPromptVocabulary caps how many learned words go into the prompt. More
// adds tokens without improving the generated sentence.
const maxPromptVocabulary = 20

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// GenerateSentence implements the inference.Client interface
func (client *Client) GenerateSentence(
	ctx context.Context,
	params inference.GenerateSentenceRequest,
) (inference.GenerateSentenceResponse, error) {
	var result inference.GenerateSentenceResponse
	if err := retry.Do(
		func() error {
			response, err := client.generateSentence(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.GenerateSentenceResponse{}, err
	}
	return result, nil
}

func (client *Client) getRequestBody(args inference.GenerateSentenceRequest) ChatCompletionRequest {
	language := args.Language
	if language == "" {
		language = "English"
	}

	vocabulary := args.LearnedVocabulary
	if len(vocabulary) > maxPromptVocabulary {
		vocabulary = vocabulary[:maxPromptVocabulary]
	}

	userPrompt := fmt.Sprintf(`Generate a natural, grammatically correct sentence in %s that:
1. Contains the word '%s' in a meaningful context
2. Uses only vocabulary from this list: %s
3. Sounds natural to a native speaker
4. Is appropriate for language learning

Return only the sentence, no explanations.`,
		language, args.Word, strings.Join(vocabulary, ", "))

	return ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{
				Role:    RoleSystem,
				Content: "You are a language learning assistant. Generate natural, grammatically correct sentences.",
			},
			{
				Role:    RoleUser,
				Content: userPrompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   100,
	}
}

func (client *Client) generateSentence(
	ctx context.Context,
	args inference.GenerateSentenceRequest,
) (inference.GenerateSentenceResponse, error) {
	if args.Word == "" {
		return inference.GenerateSentenceResponse{}, fmt.Errorf("word must not be empty")
	}

	requestBody := client.getRequestBody(args)

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.GenerateSentenceResponse{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.GenerateSentenceResponse{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return inference.GenerateSentenceResponse{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	sentence := cleanSentence(responseBody.Choices[0].Message.Content)
	if sentence == "" {
		return inference.GenerateSentenceResponse{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai generated sentence",
		"word", args.Word,
		"sentence", sentence,
	)

	return inference.GenerateSentenceResponse{Sentence: sentence}, nil
}

// cleanSentence strips whitespace and the quotes models like to wrap their
// answers in.
func cleanSentence(content string) string {
	sentence := strings.TrimSpace(content)
	if len(sentence) >= 2 && strings.HasPrefix(sentence, `"`) && strings.HasSuffix(sentence, `"`) {
		sentence = sentence[1 : len(sentence)-1]
	}
	return strings.TrimSpace(sentence)
}
