package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/customHttpClient"
	"github.com/akolanti/PaperChat/internal/metrics"
	"github.com/akolanti/PaperChat/internal/rag/llm"
	"github.com/akolanti/PaperChat/pkg/logger_i"
	"google.golang.org/genai"
)

const modelPrefix = "models/"

const synthesizePrompt = `You are given several notes written about the same document.
Synthesize them into a single, well-organized study note.

Requirements:
- Integrate the content of every note; do not drop any of them.
- Remove duplicated statements.
- Arrange the result into sections that follow a logical flow.
- Preserve every formula and technical definition exactly as written.
- Return HTML only, using <h2>, <h3>, <ul>, <li> and <p> tags.

Notes:
%s`

// model names containing any of these are not chat models
var excludedModelMarkers = []string{"embedding", "robotics", "computer-use", "tts", "image"}

type llmClient struct {
	httpClient *http.Client
	config     llm.ConfigProvider
	logger     *logger_i.Logger
}

type generateContentRequest struct {
	Contents []*genai.Content `json:"contents"`
}

type listModelsResponse struct {
	Models []*genai.Model `json:"models"`
}

// GetGeminiClient talks to the Gemini REST API. A nil httpClient uses the shared pooled transport.
func GetGeminiClient(provider llm.ConfigProvider, httpClient *http.Client) llm.Gateway {
	if httpClient == nil {
		httpClient = customHttpClient.NewClient(config.LLMRequestTimeout)
	}
	return &llmClient{
		httpClient: httpClient,
		config:     provider,
		logger:     logger_i.NewLogger("llm_gemini"),
	}
}

func (c *llmClient) Query(ctx context.Context, contextText string, question string) (string, error) {
	cfg, err := c.resolve(ctx)
	if err != nil {
		return "", err
	}

	instruction := cfg.SystemInstruction
	if instruction == "" {
		instruction = config.DefaultSystemInstruction
	}
	payload := generateContentRequest{
		Contents: []*genai.Content{{
			Parts: []*genai.Part{
				genai.NewPartFromText(instruction + "\n\nContext:\n" + contextText),
				genai.NewPartFromText("Question:\n" + question),
			},
		}},
	}

	resp, err := c.generate(ctx, cfg, payload, "llm_query")
	if err != nil {
		return "", err
	}
	text, ok := firstText(resp)
	if !ok {
		c.logger.WithTrace(ctx).Warn("Gemini returned no candidate text", "model", cfg.Model)
		return "", &llm.EmptyResponseError{}
	}
	return text, nil
}

// Synthesize returns config.SynthesizeFallback instead of failing when the model sends no text.
func (c *llmClient) Synthesize(ctx context.Context, notes []string) (string, error) {
	cfg, err := c.resolve(ctx)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(synthesizePrompt, strings.Join(notes, "\n---\n"))
	payload := generateContentRequest{
		Contents: []*genai.Content{{
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		}},
	}

	resp, err := c.generate(ctx, cfg, payload, "llm_synthesize")
	if err != nil {
		if llm.IsEmptyResponse(err) {
			return config.SynthesizeFallback, nil
		}
		return "", err
	}
	text, ok := firstText(resp)
	if !ok {
		return config.SynthesizeFallback, nil
	}
	return text, nil
}

func (c *llmClient) ListModels(ctx context.Context) ([]string, error) {
	cfg, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}
	log := c.logger.WithTrace(ctx)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_list_models", time.Since(start)) }()

	reqCtx, cancel := context.WithTimeout(ctx, config.LLMRequestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models?key=%s", cfg.BaseURL, url.QueryEscape(cfg.APIKey))
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build model list request: %w", err)
	}

	body, status, err := c.do(req)
	if err != nil {
		log.Error("Model list request failed", "error", err)
		return nil, err
	}
	if !isSuccess(status) {
		log.Warn("Model list rejected", "status", status)
		return nil, &llm.RemoteError{StatusCode: status, Body: string(body)}
	}

	var decoded listModelsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode model list: %w", err)
	}
	return filterChatModels(decoded.Models), nil
}

func (c *llmClient) generate(ctx context.Context, cfg llm.EndpointConfig, payload generateContentRequest, label string) (*genai.GenerateContentResponse, error) {
	log := c.logger.WithTrace(ctx).With("model", cfg.Model)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics(label, time.Since(start)) }()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode gemini request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, config.LLMRequestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		cfg.BaseURL, url.PathEscape(cfg.Model), url.QueryEscape(cfg.APIKey))
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("Calling generateContent", "bytes", len(data))
	body, status, err := c.do(req)
	if err != nil {
		log.Error("Gemini request failed", "error", err)
		return nil, err
	}
	if !isSuccess(status) {
		log.Warn("Gemini rejected the request", "status", status)
		return nil, &llm.RemoteError{StatusCode: status, Body: string(body)}
	}

	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Error("Malformed Gemini response", "error", err)
		return nil, &llm.EmptyResponseError{}
	}
	return &resp, nil
}

func (c *llmClient) do(req *http.Request) ([]byte, int, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, 0, fmt.Errorf("gemini request: %w", urlErr.Err)
		}
		return nil, 0, fmt.Errorf("gemini request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("read gemini response: %w", err)
	}
	return body, res.StatusCode, nil
}

// resolve reads the endpoint config fresh and fails before any network I/O without a key.
func (c *llmClient) resolve(ctx context.Context) (llm.EndpointConfig, error) {
	cfg := c.config.EndpointConfig(ctx)
	if cfg.APIKey == "" {
		return cfg, &llm.ConfigError{Err: llm.ErrMissingAPIKey}
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultGeminiModel
	}
	cfg.Model = strings.TrimPrefix(cfg.Model, modelPrefix)
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultGeminiBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", false
	}
	text := content.Parts[0].Text
	return text, text != ""
}

func filterChatModels(models []*genai.Model) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		if m == nil {
			continue
		}
		if isChatModel(m.Name) {
			names = append(names, strings.Replace(m.Name, modelPrefix, "", 1))
		}
	}
	return names
}

func isChatModel(name string) bool {
	lower := strings.ToLower(name)
	if !strings.Contains(lower, "gemini") {
		return false
	}
	for _, marker := range excludedModelMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
