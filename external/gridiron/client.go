package gridiron

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
	"github.com/riskibarqy/survivor-pool/internal/platform/resilience"
	"github.com/riskibarqy/survivor-pool/internal/usecase"
)

const (
	defaultBaseURL          = "https://api.gridiron-scores.com/v2/football/nfl"
	defaultTimeout          = 20 * time.Second
	defaultRateLimitBackoff = 60 * time.Second
	maxResponseBytes        = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apikey=[^&\s"']+`)
var errGridironTransient = crerr.New("gridiron transient failure")

type ClientConfig struct {
	HTTPClient       *fasthttp.Client
	BaseURL          string
	Token            string
	Timeout          time.Duration
	MaxRetries       int
	RateLimitBackoff time.Duration
	Logger           *logging.Logger
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// Client talks to the scoreboard feed. All fetches share a circuit breaker
// and coalesce identical in-flight requests.
type Client struct {
	httpClient       *fasthttp.Client
	baseURL          string
	token            string
	timeout          time.Duration
	maxRetries       int
	rateLimitBackoff time.Duration
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
	circuitEnabled   bool
	flight           resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RateLimitBackoff
	if backoff <= 0 {
		backoff = defaultRateLimitBackoff
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:       httpClient,
		baseURL:          baseURL,
		token:            strings.TrimSpace(cfg.Token),
		timeout:          timeout,
		maxRetries:       maxInt(cfg.MaxRetries, 0),
		rateLimitBackoff: backoff,
		logger:           logger,
		breaker:          resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled:   breakerCfg.Enabled,
	}
}

// FetchEventsByYear returns the full scoreboard for a calendar year, one row
// per game with competitors, week number, and live score state.
func (c *Client) FetchEventsByYear(ctx context.Context, year int) ([]usecase.ExternalEvent, error) {
	if year <= 0 {
		return nil, fmt.Errorf("year must be greater than zero")
	}

	path := "/scoreboard"
	query := map[string]string{
		"year":  strconv.Itoa(year),
		"limit": "1000",
	}

	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scoreboard year=%d: %w", year, err)
	}

	out := make([]usecase.ExternalEvent, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		mapped, ok := mapScoreboardEvent(item)
		if !ok {
			c.logger.WarnContext(ctx, "skip malformed scoreboard event", "event_id", item.ID, "year", year)
			continue
		}
		out = append(out, mapped)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gridiron circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: scoreboard feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.buildURL(path, query)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errGridironTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) buildURL(path string, query map[string]string) string {
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(c.baseURL)
	buf.WriteString(path)
	sep := byte('?')
	for _, key := range keys {
		buf.WriteByte(sep)
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(query[key])
		sep = '&'
	}
	if c.token != "" {
		buf.WriteByte(sep)
		buf.WriteString("apikey=")
		buf.WriteString(c.token)
	}
	return buf.String()
}

// executeRequest sends one GET and applies the retry policy: rate limiting
// waits one fixed backoff and retries exactly once, other transient failures
// retry up to maxRetries with linear backoff, everything else fails fast.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	rateLimitRetried := false

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.send(fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %s", errGridironTransient, sanitizeSensitiveText(err.Error(), c.token))
		case status == fasthttp.StatusTooManyRequests:
			if rateLimitRetried {
				return nil, fmt.Errorf("%w: provider rate limited after retry", errGridironTransient)
			}
			rateLimitRetried = true
			c.logger.WarnContext(ctx, "gridiron rate limited, backing off",
				"backoff", c.rateLimitBackoff.String(),
				"url", redactAPIURL(fullURL),
			)
			if err := sleepContext(ctx, c.rateLimitBackoff); err != nil {
				return nil, err
			}
			attempt--
			continue
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errGridironTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		if err := sleepContext(ctx, time.Duration(attempt+1)*time.Second); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "gridiron request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) send(fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, 0, err
	}

	body := resp.Body()
	raw := make([]byte, len(body))
	copy(raw, body)
	return raw, resp.StatusCode(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableStatus(status int) bool {
	return status >= 500
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
}

func redactAPIURL(fullURL string) string {
	return apiKeyParamRegex.ReplaceAllString(fullURL, "apikey=REDACTED")
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
