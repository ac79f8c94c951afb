package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kchol-assistant/internal/assistant/config"
	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository generates Turkish responses through the Gemini API.
type geminiAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new Gemini-backed AI repository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (AIRepository, error) {
	if cfg.Gemini.MaxRequestPerMinute <= 0 || cfg.Gemini.MaxTokenPerMinute <= 0 {
		return nil, fmt.Errorf("gemini rate limits must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)

	return &geminiAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

// GenerateResponse produces a plain free-text completion for the prompt.
func (r *geminiAIRepository) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	resp, err := r.executeGeminiAIRequest(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	return r.extractText(resp)
}

// GenerateWithSearch produces a completion grounded with Google Search.
func (r *geminiAIRepository) GenerateWithSearch(ctx context.Context, prompt string) (string, error) {
	tools := []dto.Tool{{GoogleSearch: &struct{}{}}}
	resp, err := r.executeGeminiAIRequest(ctx, prompt, tools)
	if err != nil {
		return "", err
	}
	return r.extractText(resp)
}

func (r *geminiAIRepository) executeGeminiAIRequest(ctx context.Context, prompt string, tools []dto.Tool) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
		Tools:    tools,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("Failed to marshal payload", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from Gemini API", logger.IntField("status_code", resp.StatusCode))
		return nil, &errs.ExternalServiceError{
			Service: "Gemini",
			Status:  resp.StatusCode,
			Message: string(body),
		}
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &geminiResp, nil
}

func (r *geminiAIRepository) extractText(resp *dto.GeminiAPIResponse) (string, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}
	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
