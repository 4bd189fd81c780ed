// Package gemini implements the commitment-verification collaborator: an
// independent check of a conversation against Google's Gemini API. Its
// verdict is stored alongside the heuristic result but never merged with it;
// the analysis pipeline is correct without this package.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/obrio-labs/promisetrack/internal/analyzer"
	"github.com/obrio-labs/promisetrack/internal/config"
)

// Promise is one commitment found by the model.
type Promise struct {
	Text         string `json:"promise_text"`
	Deadline     string `json:"deadline"`
	DatePromised string `json:"date_promised"`
	Fulfilled    bool   `json:"fulfilled"`
	Reason       string `json:"reason"`
}

// Verdict is the model's structured assessment of a conversation.
type Verdict struct {
	PromisesFound    bool      `json:"promises_found"`
	Promises         []Promise `json:"promises"`
	UnfulfilledCount int       `json:"unfulfilled_count"`
	Summary          string    `json:"analysis_summary"`
}

// Client defines the verification operations used by the analysis service.
type Client interface {
	VerifyConversation(ctx context.Context, conv analyzer.Conversation) (*Verdict, error)
}

type sdkClient struct {
	genaiClient      *genai.Client
	log              *slog.Logger
	contentConfig    *genai.GenerateContentConfig
	defaultModelName string
	maxRetries       int
	retryDelay       time.Duration
}

// NewClient creates a new Gemini verification client with the provided
// configuration.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	baseCfg := &genai.GenerateContentConfig{
		Temperature:       &cfg.Temperature,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: VerifierSystemInstruction}}},
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized successfully", "model", cfg.ModelName)
	return &sdkClient{
		genaiClient:      gi,
		log:              logger,
		contentConfig:    baseCfg,
		defaultModelName: cfg.ModelName,
		maxRetries:       cfg.MaxRetries,
		retryDelay:       time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}, nil
}

// formatMessage renders one message the way the verification prompt expects.
func formatMessage(m analyzer.Message) string {
	sender := "Клієнт"
	if m.FromOperator {
		sender = "Менеджер"
	}
	return fmt.Sprintf("[%s] %s: %s", m.Timestamp.Format("2006-01-02 15:04"), sender, m.Text)
}

var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"promises_found": {Type: genai.TypeBoolean, Description: "Whether any manager commitments were found."},
		"promises": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"promise_text":  {Type: genai.TypeString, Description: "The commitment statement."},
					"deadline":      {Type: genai.TypeString, Description: "The stated or implied deadline."},
					"date_promised": {Type: genai.TypeString, Description: "When the commitment was made."},
					"fulfilled":     {Type: genai.TypeBoolean, Description: "Whether it was honored in time."},
					"reason":        {Type: genai.TypeString, Description: "Why it was not honored, if applicable."},
				},
				Required: []string{"promise_text", "deadline", "date_promised", "fulfilled", "reason"},
			},
		},
		"unfulfilled_count": {Type: genai.TypeInteger, Description: "Number of unfulfilled commitments."},
		"analysis_summary":  {Type: genai.TypeString, Description: "Short conclusion about commitment follow-through."},
	},
	Required: []string{"promises_found", "promises", "unfulfilled_count", "analysis_summary"},
}

// VerifyConversation asks the model for an independent commitment verdict on
// the conversation. The conversation must be non-empty.
func (c *sdkClient) VerifyConversation(ctx context.Context, conv analyzer.Conversation) (*Verdict, error) {
	if conv.IsEmpty() {
		return nil, fmt.Errorf("cannot verify an empty conversation")
	}

	c.log.DebugContext(ctx, "Verifying conversation", "chat_id", conv.ChatID, "message_count", conv.TotalMessages)

	var sb strings.Builder
	sb.WriteString(VerifierPromptHeader)
	for _, m := range conv.Messages {
		sb.WriteString(formatMessage(m))
		sb.WriteByte('\n')
	}

	contents := []*genai.Content{genai.NewContentFromText(sb.String(), genai.RoleUser)}

	copyCfg := *c.contentConfig
	copyCfg.ResponseMIMEType = "application/json"
	copyCfg.ResponseSchema = verdictSchema

	resp, err := c.generateContentWithRetries(ctx, c.defaultModelName, contents, &copyCfg)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini verification API call failed", "error", err)
		return nil, fmt.Errorf("failed to verify conversation: %w", err)
	}

	jsonText, err := c.extractTextFromResponse(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("failed to extract verification response: %w", err)
	}

	var verdict Verdict
	if err := json.Unmarshal([]byte(jsonText), &verdict); err != nil {
		c.log.ErrorContext(ctx, "Failed to parse verdict JSON from Gemini response", "error", err, "response_text", jsonText)
		return nil, fmt.Errorf("invalid verdict JSON received: %w", err)
	}

	c.log.DebugContext(ctx, "Parsed verification verdict",
		"chat_id", conv.ChatID,
		"promises_found", verdict.PromisesFound,
		"unfulfilled_count", verdict.UnfulfilledCount)
	return &verdict, nil
}

func (c *sdkClient) generateContentWithRetries(ctx context.Context, modelName string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var resp *genai.GenerateContentResponse
	var err error

	for i := 0; i <= c.maxRetries; i++ {
		resp, err = c.genaiClient.Models.GenerateContent(ctx, modelName, contents, cfg)
		if err == nil {
			return resp, nil
		}

		c.log.WarnContext(ctx, "Gemini API call failed, checking for retry", "attempt", i+1, "max_retries", c.maxRetries, "error", err)

		var apiErr *genai.APIError
		if errors.As(err, &apiErr) && (apiErr.Code == 500 || apiErr.Code == 503) {
			if i < c.maxRetries {
				c.log.InfoContext(ctx, "Retrying Gemini API call after transient error", "delay", c.retryDelay, "code", apiErr.Code)
				time.Sleep(c.retryDelay)
				continue
			}
			return nil, fmt.Errorf("gemini API call failed after %d retries (APIError code %d): %w", c.maxRetries, apiErr.Code, err)
		}

		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	return nil, err
}

func (c *sdkClient) extractTextFromResponse(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reasonMsg := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reasonMsg = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "reason", reasonMsg)
		return "", fmt.Errorf("verification blocked by safety filter: %s", reasonMsg)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)
		return "", fmt.Errorf("verification returned no content, finish reason: %s", finishReason)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("verification returned empty text")
	}

	return text, nil
}
