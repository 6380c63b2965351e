package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/telemetry/metrics"
	"github.com/elitestar/bookings-web/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	megabyte = 1024 * 1024

	cacheKeyAllCelebs   = "celebs::all"
	cacheKeyCelebPrefix = "celebs::"
)

var _ auth.Verifier = (*Client)(nil)

// Client talks to the remote celebrity/booking API. It never retries.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	cache          *freecache.Cache
	cacheTTL       int // seconds, 0 disables caching
	metricsManager *metrics.Manager
	largeEntryOnce sync.Once
}

type ClientParams struct {
	BaseURL  string
	Timeout  time.Duration
	CacheMB  int
	CacheTTL time.Duration
	Metrics  *metrics.Manager
	// HTTPClient overrides the default otelhttp instrumented client.
	HTTPClient *http.Client
}

func NewClient(params ClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	cacheSize := params.CacheMB * megabyte
	if cacheSize <= 0 {
		cacheSize = 10 * megabyte
	}

	return &Client{
		baseURL:        strings.TrimRight(params.BaseURL, "/"),
		httpClient:     httpClient,
		cache:          freecache.NewCache(cacheSize),
		cacheTTL:       int(params.CacheTTL.Seconds()),
		metricsManager: params.Metrics,
	}
}

// Healthcheck pings the remote API.
func (c *Client) Healthcheck(ctx context.Context) error {
	if err := c.get(ctx, "/api/auth/healthcheck", "healthcheck", nil); err != nil {
		return fmt.Errorf("client.Healthcheck: %w", err)
	}
	return nil
}

// Verify checks the credentials against the remote login endpoint.
// 400, 401 and 403 map to auth.ErrInvalidCredentials, everything else to
// auth.ErrUnreachable.
func (c *Client) Verify(ctx context.Context, creds auth.Credentials) (auth.Identity, error) {
	var resp loginResponse
	err := c.post(ctx, "/api/auth/login", "login", loginRequest{
		Username: creds.Username,
		Password: creds.Password,
	}, &resp)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && isCredentialRejection(httpErr.StatusCode) {
			return auth.Identity{}, fmt.Errorf("%w: %s", auth.ErrInvalidCredentials, httpErr.Message)
		}
		return auth.Identity{}, fmt.Errorf("%w: %s", auth.ErrUnreachable, err)
	}

	username := resp.Username
	if username == "" {
		username = creds.Username
	}
	return auth.Identity{
		Username: username,
		Role:     auth.ParseRole(resp.Role),
	}, nil
}

func isCredentialRejection(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}

// ListCelebrities returns the whole catalog. The cached copy is kept as one
// entry per celebrity plus an id index, so a large catalog never exceeds the
// per-entry limit of the cache.
func (c *Client) ListCelebrities(ctx context.Context) ([]Celebrity, error) {
	if celebs, ok := c.cachedCelebrities(); ok {
		log.Tracef("api client: %s served from cache", cacheKeyAllCelebs)
		return celebs, nil
	}

	var celebs []Celebrity
	if err := c.get(ctx, "/api/celebs", "celebs.list", &celebs); err != nil {
		return nil, fmt.Errorf("client.ListCelebrities: %w", err)
	}
	c.cacheCelebrities(celebs)
	return celebs, nil
}

func (c *Client) cachedCelebrities() ([]Celebrity, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}
	var ids []string
	if !c.cacheGet(cacheKeyAllCelebs, &ids) {
		return nil, false
	}
	celebs := make([]Celebrity, 0, len(ids))
	for _, id := range ids {
		var celeb Celebrity
		if !c.cacheGet(cacheKeyCelebPrefix+id, &celeb) {
			return nil, false
		}
		celebs = append(celebs, celeb)
	}
	return celebs, true
}

// cacheCelebrities writes the index last and only when every entry made it in.
func (c *Client) cacheCelebrities(celebs []Celebrity) {
	if c.cacheTTL <= 0 {
		return
	}
	ids := make([]string, 0, len(celebs))
	for _, celeb := range celebs {
		if !c.cacheSet(cacheKeyCelebPrefix+celeb.ID, celeb) {
			c.cache.Del([]byte(cacheKeyAllCelebs))
			return
		}
		ids = append(ids, celeb.ID)
	}
	c.cacheSet(cacheKeyAllCelebs, ids)
}

func (c *Client) GetCelebrity(ctx context.Context, id string) (*Celebrity, error) {
	cacheKey := cacheKeyCelebPrefix + id
	var celeb Celebrity
	if c.cacheTTL > 0 && c.cacheGet(cacheKey, &celeb) {
		log.Tracef("api client: %s served from cache", cacheKey)
		return &celeb, nil
	}

	if err := c.get(ctx, "/api/celebs/"+url.PathEscape(id), "celebs.get", &celeb); err != nil {
		return nil, fmt.Errorf("client.GetCelebrity: %w", err)
	}
	if c.cacheTTL > 0 {
		c.cacheSet(cacheKey, celeb)
	}
	return &celeb, nil
}

func (c *Client) CreateCelebrity(ctx context.Context, celeb NewCelebrity) (*Celebrity, error) {
	var created Celebrity
	if err := c.post(ctx, "/api/celebs", "celebs.create", celeb, &created); err != nil {
		return nil, fmt.Errorf("client.CreateCelebrity: %w", err)
	}
	c.cache.Del([]byte(cacheKeyAllCelebs))
	return &created, nil
}

func (c *Client) DeleteCelebrity(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/celebs/"+url.PathEscape(id), "celebs.delete", nil, nil); err != nil {
		return fmt.Errorf("client.DeleteCelebrity: %w", err)
	}
	c.cache.Del([]byte(cacheKeyAllCelebs))
	c.cache.Del([]byte(cacheKeyCelebPrefix + id))
	return nil
}

func (c *Client) BookCelebrity(ctx context.Context, booking BookingRequest) error {
	if err := c.post(ctx, "/api/celebs/book", "celebs.book", booking, nil); err != nil {
		return fmt.Errorf("client.BookCelebrity: %w", err)
	}
	return nil
}

func (c *Client) ListBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.get(ctx, "/api/celebs/bookings", "bookings.list", &bookings); err != nil {
		return nil, fmt.Errorf("client.ListBookings: %w", err)
	}
	return bookings, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/celebs/bookings/"+url.PathEscape(id), "bookings.delete", nil, nil); err != nil {
		return fmt.Errorf("client.DeleteBooking: %w", err)
	}
	return nil
}

func (c *Client) cacheGet(key string, out any) bool {
	cached, err := c.cache.Get([]byte(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cached, out); err != nil {
		log.Warnf("api client: unmarshal cached %s: %s", key, err)
		c.cache.Del([]byte(key))
		return false
	}
	return true
}

// cacheSet reports whether the value was stored. Oversized values are
// skipped; they are served from the remote API instead.
func (c *Client) cacheSet(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warnf("api client: marshal %s for cache: %s", key, err)
		return false
	}
	if err := c.cache.Set([]byte(key), data, c.cacheTTL); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			c.largeEntryOnce.Do(func() {
				log.Warnf("api client: %s is %d bytes, too large for the cache, consider a bigger api_cache_size_mb", key, len(data))
			})
			log.Debugf("api client: %s not cached: %s", key, err)
			return false
		}
		log.Warnf("api client: set cache %s: %s", key, err)
		return false
	}
	return true
}

func (c *Client) get(ctx context.Context, path, endpoint string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, endpoint, nil, out)
}

func (c *Client) post(ctx context.Context, path, endpoint string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, endpoint, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path, endpoint string, body any, out any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "apiClient."+endpoint)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("api.path", path),
	)

	statusCode := 0
	start := time.Now()
	defer func() {
		if c.metricsManager != nil {
			c.metricsManager.HistogramAPICallDuration.
				WithLabelValues(endpoint, strconv.Itoa(statusCode)).
				Observe(time.Since(start).Seconds())
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, megabyte))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
