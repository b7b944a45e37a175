// Package pricefeed talks to the external market data provider that publishes
// player prices. Prices arrive in tenths of a million, matching the catalog.
package pricefeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/platform/logging"
	"github.com/riskibarqy/roster-engine/internal/platform/resilience"
	"github.com/riskibarqy/roster-engine/internal/usecase"
)

const (
	defaultBaseURL     = "https://api.fantasymarket.example/v1"
	defaultTimeout     = 15 * time.Second
	defaultMaxParallel = 4
	maxResponseBytes   = 4 << 20
)

var errPricefeedTransient = crerr.New("pricefeed transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	MaxParallel    int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	maxParallel    int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxParallel := cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		maxParallel:    maxParallel,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type priceItem struct {
	PlayerID string `json:"player_id"`
	Price    int64  `json:"price"`
}

type pageEnvelope struct {
	Data []priceItem `json:"data"`
	Meta struct {
		Page       int `json:"page"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

type pageResult struct {
	page       int
	totalPages int
	items      []priceItem
}

// FetchPrices pulls every page of the provider's price listing. The first
// page reveals the page count; remaining pages are fetched concurrently and
// merged back into page order so repeated syncs see a stable sequence.
func (c *Client) FetchPrices(ctx context.Context) ([]player.PriceUpdate, error) {
	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	results := []pageResult{first}
	totalPages := first.totalPages
	if totalPages < 1 {
		totalPages = 1
	}

	if totalPages > 1 {
		p := pool.NewWithResults[pageResult]().
			WithContext(ctx).
			WithMaxGoroutines(c.maxParallel)
		for page := 2; page <= totalPages; page++ {
			page := page
			p.Go(func(ctx context.Context) (pageResult, error) {
				return c.fetchPage(ctx, page)
			})
		}
		rest, err := p.Wait()
		if err != nil {
			return nil, err
		}
		results = append(results, rest...)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].page < results[j].page })

	updates := make([]player.PriceUpdate, 0, len(results)*len(first.items))
	for _, r := range results {
		for _, item := range r.items {
			updates = append(updates, player.PriceUpdate{
				PlayerID: strings.TrimSpace(item.PlayerID),
				Price:    item.Price,
			})
		}
	}

	return updates, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (pageResult, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "pricefeed circuit breaker rejected request", "state", c.breaker.State())
			return pageResult{}, fmt.Errorf("%w: price provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	env, err := c.executePage(ctx, page)
	if c.circuitEnabled {
		if err != nil && stderrors.Is(err, errPricefeedTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return pageResult{}, err
	}

	result := pageResult{page: page, totalPages: env.Meta.TotalPages, items: env.Data}
	if env.Meta.Page > 0 {
		result.page = env.Meta.Page
	}

	return result, nil
}

func (c *Client) executePage(ctx context.Context, page int) (pageEnvelope, error) {
	fullURL := c.baseURL + "/player-prices?page=" + strconv.Itoa(page)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return pageEnvelope{}, err
		}

		env, err := c.doRequest(fullURL)
		if err == nil {
			return env, nil
		}
		lastErr = err
		if !stderrors.Is(err, errPricefeedTransient) {
			return pageEnvelope{}, err
		}
		if attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return pageEnvelope{}, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "pricefeed request failed", "page", page, "error", lastErr)
	return pageEnvelope{}, fmt.Errorf("fetch price page %d: %w", page, lastErr)
}

func (c *Client) doRequest(fullURL string) (pageEnvelope, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return pageEnvelope{}, fmt.Errorf("%w: send request: %v", errPricefeedTransient, err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	if len(body) > maxResponseBytes {
		return pageEnvelope{}, fmt.Errorf("provider response too large: %d bytes", len(body))
	}

	if status < 200 || status >= 300 {
		if isRetryableStatus(status) {
			return pageEnvelope{}, fmt.Errorf("%w: provider status=%d", errPricefeedTransient, status)
		}
		return pageEnvelope{}, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(body))
	}

	// The response buffer is reused after release, so decode from a pooled
	// copy that stays valid for the unmarshal.
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(body)

	var env pageEnvelope
	if err := sonic.Unmarshal(buf.B, &env); err != nil {
		return pageEnvelope{}, fmt.Errorf("decode provider payload: %w", err)
	}

	return env, nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(body []byte) string {
	const limit = 256
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
