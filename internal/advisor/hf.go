package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"budgetbot/internal/common"
)

// HFClient generates text through a hosted inference endpoint. It satisfies
// Generator; the service layer decides what happens when a call fails.
type HFClient struct {
	cfg    common.AdvisorConfig
	client *http.Client
	logger *slog.Logger
}

func NewHFClient(cfg common.AdvisorConfig, logger *slog.Logger) *HFClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &HFClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float32 `json:"temperature"`
	TopP         float32 `json:"top_p"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Generate sends the prompt to the inference endpoint and returns the
// generated text with the prompt echo stripped.
func (c *HFClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	c.logger.Info("advisor.generate.start", "model", c.cfg.Model, "prompt_chars", len(prompt))

	payload := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens: c.cfg.MaxTokens,
			Temperature:  c.cfg.Temperature,
			TopP:         0.9,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", common.NewAppError("ADVISOR", "failed to encode inference request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", common.NewAppError("ADVISOR", "failed to build inference request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("advisor.generate.failed", "error", err)
		return "", common.NewAppError("ADVISOR", "inference request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", common.NewAppError("ADVISOR", "failed to read inference response", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("advisor.generate.failed", "status", resp.StatusCode)
		return "", statusError(resp.StatusCode)
	}

	text, err := decodeGeneration(raw)
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(strings.TrimPrefix(text, prompt))
	if answer == "" {
		return "", common.NewAppError("ADVISOR", "model returned an empty answer", common.ErrUnavailable)
	}

	c.logger.Info("advisor.generate.complete", "answer_chars", len(answer), "elapsed_ms", time.Since(start).Milliseconds())
	return answer, nil
}

func statusError(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return common.NewAppError("ADVISOR", "inference API token was rejected", common.ErrUnauthorized)
	case http.StatusForbidden:
		return common.NewAppError("ADVISOR", "inference API token lacks access to this model", common.ErrUnauthorized)
	case http.StatusNotFound:
		return common.NewAppError("ADVISOR", "inference model not found", common.ErrUnavailable)
	case http.StatusServiceUnavailable:
		return common.NewAppError("ADVISOR", "inference model is loading, try again shortly", common.ErrUnavailable)
	default:
		return common.NewAppError("ADVISOR", fmt.Sprintf("inference API returned status %d", code), common.ErrUnavailable)
	}
}

func decodeGeneration(raw []byte) (string, error) {
	// The endpoint returns either a list of generations or a single object.
	var list []hfGeneration
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0].GeneratedText, nil
	}
	var one hfGeneration
	if err := json.Unmarshal(raw, &one); err == nil && one.GeneratedText != "" {
		return one.GeneratedText, nil
	}
	return "", common.NewAppError("ADVISOR", "could not decode inference response", common.ErrUnavailable)
}
