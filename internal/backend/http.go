package backend

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/schema"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 64 << 20

// HTTPSource reads specs, analyses and diffs from the REST backend.
type HTTPSource struct {
	baseURL string
	token   string
	client  *http.Client

	cache   contract.CacheStore
	ttl     time.Duration
	refresh bool
	now     func() time.Time
}

var _ contract.SpecSource = &HTTPSource{} // Compile-time check

// Option configures an HTTPSource.
type Option func(*HTTPSource)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(s *HTTPSource) { s.token = token }
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *HTTPSource) { s.client = c }
}

// WithCache enables the read-through payload cache. Entries older than ttl
// are fetched again; refresh skips cache reads but still writes.
func WithCache(store contract.CacheStore, ttl time.Duration, refresh bool) Option {
	return func(s *HTTPSource) {
		s.cache = store
		s.ttl = ttl
		s.refresh = refresh
	}
}

// withClock overrides time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(s *HTTPSource) { s.now = now }
}

// NewHTTPSource creates a source for baseURL with the given request timeout.
func NewHTTPSource(baseURL string, timeout time.Duration, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListSpecs implements contract.SpecSource.
func (s *HTTPSource) ListSpecs(ctx context.Context, serviceID string) ([]schema.SpecRevision, error) {
	var specs []schema.SpecRevision
	path := fmt.Sprintf("/services/%s/specs", url.PathEscape(serviceID))
	if err := s.fetch(ctx, http.MethodGet, path, nil, &specs); err != nil {
		return nil, fmt.Errorf("failed to list specs for service %s: %w", serviceID, err)
	}
	return specs, nil
}

// ListAnalyses implements contract.SpecSource.
func (s *HTTPSource) ListAnalyses(ctx context.Context, serviceID, specID string) ([]schema.ComplianceResult, error) {
	path := fmt.Sprintf("/services/%s/specs/analyses", url.PathEscape(serviceID))
	if specID != "" {
		path = fmt.Sprintf("/services/%s/specs/%s/analyses", url.PathEscape(serviceID), url.PathEscape(specID))
	}

	var list []schema.ComplianceResult
	if err := s.fetch(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list analyses for service %s: %w", serviceID, err)
	}
	return list, nil
}

// DiffSpecs implements contract.SpecSource.
func (s *HTTPSource) DiffSpecs(ctx context.Context, serviceID, oldSpecID, newSpecID string) (schema.DiffResponse, error) {
	var resp schema.DiffResponse
	path := fmt.Sprintf("/services/%s/specs/diff", url.PathEscape(serviceID))
	body := DiffRequest{OldSpecID: oldSpecID, NewSpecID: newSpecID}
	if err := s.fetch(ctx, http.MethodPost, path, body, &resp); err != nil {
		return resp, fmt.Errorf("failed to diff specs %s and %s: %w", oldSpecID, newSpecID, err)
	}
	return resp, nil
}

// cacheKey identifies a request in the payload cache.
func cacheKey(method, path string, body []byte) string {
	if len(body) == 0 {
		return method + " " + path
	}
	return method + " " + path + " " + string(body)
}

// fetch performs the request, consulting the payload cache first, and
// decodes the JSON response into out.
func (s *HTTPSource) fetch(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = encoded
	}

	key := cacheKey(method, path, payload)
	if data, ok := s.cached(key); ok {
		return json.Unmarshal(data, out)
	}

	data, err := s.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(key, data, contract.PayloadCacheVersion, s.now().Unix()); err != nil {
			contract.LogWarn("Failed to cache payload", err)
		}
	}
	return nil
}

// cached returns a fresh cache entry for key.
func (s *HTTPSource) cached(key string) ([]byte, bool) {
	if s.cache == nil || s.refresh {
		return nil, false
	}
	data, version, ts, err := s.cache.Get(key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			contract.LogWarn("Failed to read payload cache", err)
		}
		return nil, false
	}
	if version != contract.PayloadCacheVersion {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(time.Unix(ts, 0)) > s.ttl {
		return nil, false
	}
	return data, true
}

// do sends one request and returns the body of a 2xx response.
func (s *HTTPSource) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path,
			contract.TruncateText(strings.TrimSpace(string(data)), 200))
	}
	return data, nil
}
