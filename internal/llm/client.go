package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Message is one prior conversation turn.
type Message struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// GenerateRequest holds the parameters for a generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	History      []Message // optional prior turns
	Temperature  *float64  // nil uses task default
	MaxTokens    *int      // nil uses task default
}

// Usage reports token counts for a completed call.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	Usage     Usage
	LatencyMs int64
}

// Client provides access to the external text-generation service. The service
// is treated as untrusted: its output is validated downstream, and any
// transport, safety-filter, or parse failure surfaces as a typed error.
type Client interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// GenerateJSON sends a prompt and parses the response as a JSON object,
	// tolerating markdown code fences and surrounding prose. Parse failures
	// return ErrMalformedOutput with a diagnostic snippet of the raw text.
	GenerateJSON(ctx context.Context, req GenerateRequest) (map[string]any, error)

	// ModelVersion identifies the configured model, used to tag plans.
	ModelVersion() string
}

// httpClient implements Client against the generation service HTTP API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the configured generation endpoint.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// generateRequestBody is the JSON body sent to POST /v1/generate.
type generateRequestBody struct {
	Model    string          `json:"model"`
	System   string          `json:"system,omitempty"`
	Messages []Message       `json:"messages"`
	Options  generateOptions `json:"options,omitempty"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// generateResponseBody is the JSON body returned by POST /v1/generate.
type generateResponseBody struct {
	Model        string `json:"model"`
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason"` // "stop", "length", "safety"
	Usage        Usage  `json:"usage"`
}

func (c *httpClient) ModelVersion() string {
	return c.cfg.Model
}

func (c *httpClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	messages := append(append([]Message{}, req.History...), Message{Role: "user", Text: req.UserPrompt})
	body := generateRequestBody{
		Model:    c.cfg.Model,
		System:   req.SystemPrompt,
		Messages: messages,
		Options: generateOptions{
			Temperature: temp,
			TopP:        taskCfg.TopP,
			TopK:        taskCfg.TopK,
			MaxTokens:   maxTok,
		},
	}

	// Single attempt: the fallback path is the retry strategy.
	resp, err := c.doRequest(ctx, body)
	latency := time.Since(start).Milliseconds()
	if err == nil && resp.FinishReason == "safety" {
		err = ErrSafetyFiltered
	}
	if err == nil && resp.Text == "" {
		err = ErrEmptyResponse
	}

	if err != nil {
		if ctx.Err() != nil {
			err = ErrTimeout
		} else if isConnectionError(err) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		c.observer.OnCallComplete(CallEvent{
			Task:      req.Task,
			Model:     c.cfg.Model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(CallEvent{
		Task:         req.Task,
		Model:        c.cfg.Model,
		LatencyMs:    latency,
		Success:      true,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.OutputTokens,
	})
	return &GenerateResponse{
		Text:      resp.Text,
		Model:     resp.Model,
		Usage:     resp.Usage,
		LatencyMs: latency,
	}, nil
}

func (c *httpClient) GenerateJSON(ctx context.Context, req GenerateRequest) (map[string]any, error) {
	resp, err := c.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return ExtractJSON(resp.Text)
}

func (c *httpClient) doRequest(ctx context.Context, body generateRequestBody) (*generateResponseBody, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/v1/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, httpResp.StatusCode, truncate(string(respBody), 200))
	}

	var resp generateResponseBody
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrSafetyFiltered):
		return "SAFETY_FILTERED"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, ErrMalformedOutput):
		return "MALFORMED_OUTPUT"
	default:
		return "UNKNOWN"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
