package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/obj8899/studio/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrDisabled    = errors.New("assistant is not configured")
	ErrUnavailable = errors.New("assistant unavailable")
	ErrBadOutput   = errors.New("assistant returned malformed output")
)

type generateRequest struct {
	Model        string          `json:"model"`
	Prompt       string          `json:"prompt"`
	OutputSchema json.RawMessage `json:"output_schema"`
}

type generateResponse struct {
	Output json.RawMessage `json:"output"`
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("model api returned %d: %s", e.code, e.body)
}

// Client talks to the hosted model API. It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	prompts    catalog
	newBackOff func() backoff.BackOff
	// callTimeout bounds one generate call across all its retries. Zero leaves it to the caller.
	callTimeout time.Duration
	log         zerolog.Logger
}

func New(cfg config.AssistantConfig, log zerolog.Logger) (*Client, error) {
	prompts, err := loadCatalog(promptsYAML)
	if err != nil {
		return nil, err
	}

	maxRetry := cfg.MaxRetry
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		httpClient:  newHTTPClient(cfg),
		prompts:     prompts,
		log:         log.With().Str("component", "assistant").Logger(),
		newBackOff:  func() backoff.BackOff { return retryPolicy(maxRetry) },
		callTimeout: callTimeout(cfg.Timeout, maxRetry),
	}
	return c, nil
}

// retryPolicy retries for at most maxRetry. Zero or less means a single attempt; backoff treats a
// zero MaxElapsedTime as unlimited, so it is never passed through.
func retryPolicy(maxRetry time.Duration) backoff.BackOff {
	if maxRetry <= 0 {
		return &backoff.StopBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxElapsedTime = maxRetry
	return b
}

// callTimeout is the retry window plus one more attempt.
func callTimeout(attempt, maxRetry time.Duration) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return attempt + max(maxRetry, 0)
}

// newHTTPClient picks client-credentials auth when a token URL is set, a static bearer key
// otherwise, and no auth when neither is configured.
func newHTTPClient(cfg config.AssistantConfig) *http.Client {
	var client *http.Client
	switch {
	case cfg.TokenURL != "":
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		client = cc.Client(context.Background())
	case cfg.APIKey != "":
		client = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.APIKey,
			TokenType:   "Bearer",
		}))
	default:
		client = &http.Client{}
	}
	client.Timeout = cfg.Timeout
	return client
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// generate renders the named prompt with data, calls the model and decodes its output into out.
func (c *Client) generate(ctx context.Context, promptName string, data any, out any) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	text, schema, err := c.prompts.render(promptName, data)
	if err != nil {
		return err
	}
	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: text, OutputSchema: schema})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	var raw json.RawMessage
	op := func() error {
		raw, err = c.post(ctx, body)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Str("prompt", promptName).Dur("retry_in", wait).Msg("model call failed, retrying")
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(c.newBackOff(), ctx), notify); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadOutput, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		serr := &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(snippet))}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, serr
		}
		return nil, backoff.Permanent(serr)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	if len(gr.Output) == 0 {
		return nil, backoff.Permanent(errors.New("response has no output"))
	}
	return gr.Output, nil
}
