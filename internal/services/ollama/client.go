package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subtrans/internal/language"
	"subtrans/internal/services"
	"subtrans/internal/translator"
)

const (
	defaultBaseURL      = "http://localhost:11434"
	defaultKeepAlive    = "10m"
	defaultBatchTimeout = 120 * time.Second
	perSegmentTimeout   = 5 * time.Second
	singleCallTimeout   = 60 * time.Second
	tagsTimeout         = 5 * time.Second
)

// Config captures the runtime settings required to talk to Ollama.
type Config struct {
	BaseURL        string
	Model          string
	KeepAlive      string // How long the model stays resident ("10m", "1h", "-1")
	TimeoutSeconds int    // Base per-call timeout for batch requests
}

// Client talks to the Ollama generate API and implements
// translator.Backend.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

var _ translator.Backend = (*Client)(nil)

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an Ollama client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:          strings.TrimSpace(cfg.Model),
			KeepAlive:      strings.TrimSpace(cfg.KeepAlive),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		// Per-call deadlines come from the request context because they
		// scale with batch size; the client itself carries no timeout.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.KeepAlive == "" {
		client.cfg.KeepAlive = defaultKeepAlive
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	return client
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Translate sends a batch to the generate API and returns one translation
// per requested item ID. Single-item batches use a plain translation
// prompt instead of the numbered-line format; they are the last resort of
// the split-retry recursion and the simpler prompt succeeds more often.
func (c *Client) Translate(ctx context.Context, items []translator.Item, source, target language.Language) (map[int]string, error) {
	if len(items) == 0 {
		return map[int]string{}, nil
	}

	if len(items) == 1 {
		return c.translateSingle(ctx, items[0], source, target)
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = preserveLineBreaks(item.Text)
	}
	prompt := batchPrompt(c.cfg.Model, texts, source, target)

	response, err := c.generate(ctx, prompt, c.batchTimeout(len(items)))
	if err != nil {
		return nil, err
	}

	parsed := parseNumbered(response)
	out := make(map[int]string, len(items))
	for i, item := range items {
		text, ok := parsed[i+1]
		if !ok || text == "" {
			return nil, services.Wrap(services.ErrPartialResult, "ollama", "translate",
				fmt.Sprintf("response missing line %d of %d", i+1, len(items)), nil)
		}
		out[item.ID] = restoreLineBreaks(text)
	}
	return out, nil
}

func (c *Client) translateSingle(ctx context.Context, item translator.Item, source, target language.Language) (map[int]string, error) {
	text := preserveLineBreaks(item.Text)
	prompt := singlePrompt(c.cfg.Model, text, source, target)

	response, err := c.generate(ctx, prompt, singleCallTimeout)
	if err != nil {
		return nil, err
	}
	if response == "" {
		return nil, services.Wrap(services.ErrMalformed, "ollama", "translate",
			"empty response for single segment", nil)
	}
	return map[int]string{item.ID: restoreLineBreaks(response)}, nil
}

// batchTimeout scales the per-call deadline with batch size so large
// batches on slow hardware are not cut off prematurely.
func (c *Client) batchTimeout(segments int) time.Duration {
	base := defaultBatchTimeout
	if c.cfg.TimeoutSeconds > 0 {
		base = time.Duration(c.cfg.TimeoutSeconds) * time.Second
	}
	scaled := time.Duration(segments) * perSegmentTimeout
	if scaled > base {
		return scaled
	}
	return base
}

type generateRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	Stream    bool   `json:"stream"`
	KeepAlive string `json:"keep_alive"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (c *Client) generate(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/api/generate")
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "ollama", "generate", "build url", err)
	}
	encoded, err := json.Marshal(generateRequest{
		Model:     c.cfg.Model,
		Prompt:    prompt,
		Stream:    false,
		KeepAlive: c.cfg.KeepAlive,
	})
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "ollama", "generate", "encode request", err)
	}
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "ollama", "generate", "new request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransport(err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrUnreachable, "ollama", "generate",
			fmt.Sprintf("http %d: %s", resp.StatusCode, apiErrorMessage(body)), nil)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", services.Wrap(services.ErrMalformed, "ollama", "generate", "decode response", err)
	}
	if decoded.Error != "" {
		return "", services.Wrap(services.ErrUnreachable, "ollama", "generate", "api error: "+decoded.Error, nil)
	}
	return strings.TrimSpace(decoded.Response), nil
}

// classifyTransport maps transport failures onto the services markers.
// Caller cancellation passes through untouched so the job aborts instead
// of split-retrying.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.Wrap(services.ErrTimeout, "ollama", "generate", "request timed out", err)
	}
	return services.Wrap(services.ErrUnreachable, "ollama", "generate", "request failed", err)
}

func apiErrorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}

// Tags lists the model names the Ollama instance has available. It doubles
// as the connectivity check.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	callCtx, cancel := context.WithTimeout(ctx, tagsTimeout)
	defer cancel()

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/api/tags")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "ollama", "tags", "build url", err)
	}
	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "ollama", "tags", "new request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrUnreachable, "ollama", "tags",
			fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	var decoded struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, services.Wrap(services.ErrMalformed, "ollama", "tags", "decode response", err)
	}
	names := make([]string, 0, len(decoded.Models))
	for _, model := range decoded.Models {
		names = append(names, model.Name)
	}
	return names, nil
}

// Ping verifies the Ollama API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Tags(ctx)
	return err
}
