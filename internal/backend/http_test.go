package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/iocache"
	"github.com/huangsam/specboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const specsBody = `[{"id":"a","version":"1.0","revision":"r1","updatedAt":"2024-01-01"}]`

// newTestServer serves the spec endpoints and counts requests.
func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /services/{id}/specs", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.PathValue("id") == "missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, specsBody)
	})
	mux.HandleFunc("GET /services/{id}/specs/analyses", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `[{"analyzerId":"all","specId":"a","status":"Analyzed"}]`)
	})
	mux.HandleFunc("GET /services/{id}/specs/{specId}/analyses", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `[{"analyzerId":"one","specId":"`+r.PathValue("specId")+`","status":"Analyzed",`+
			`"findings":{"hint":{"count":1},"error":{"count":1}}}]`)
	})
	mux.HandleFunc("POST /services/{id}/specs/diff", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req DiffRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OldSpecID == "" {
			http.Error(w, "bad diff request", http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"result":{"json":{"added":[],"modified":[],"deleted":[{"method":"delete","path":"/pets","breaking":true}]}}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSource_Endpoints(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	src := NewHTTPSource(srv.URL+"/", time.Second)
	ctx := context.Background()

	specs, err := src.ListSpecs(ctx, "petstore")
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "a", specs[0].ID)

	all, err := src.ListAnalyses(ctx, "petstore", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "all", all[0].AnalyzerID)

	one, err := src.ListAnalyses(ctx, "petstore", "a")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "a", one[0].SpecID)
	assert.Equal(t, []schema.Severity{schema.SeverityHint, schema.SeverityError}, one[0].Findings.Severities())

	diff, err := src.DiffSpecs(ctx, "petstore", "a", "b")
	require.NoError(t, err)
	require.Len(t, diff.Result.JSON.Deleted, 1)
	assert.True(t, diff.Result.JSON.Deleted[0].Breaking)

	assert.Equal(t, int32(4), hits.Load())
}

func TestHTTPSource_Errors(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := NewHTTPSource(srv.URL, time.Second).ListSpecs(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("bad request", func(t *testing.T) {
		_, err := NewHTTPSource(srv.URL, time.Second).DiffSpecs(ctx, "petstore", "", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 400")
		assert.Contains(t, err.Error(), "bad diff request")
	})

	t.Run("canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewHTTPSource(srv.URL, time.Second).ListSpecs(canceled, "petstore")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("bad json", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "{not json")
		}))
		defer bad.Close()
		_, err := NewHTTPSource(bad.URL, time.Second).ListSpecs(ctx, "petstore")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})
}

func TestHTTPSource_BearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, WithToken("s3cret")).ListSpecs(context.Background(), "svc")
	require.NoError(t, err)
	assert.Equal(t, "Bearer s3cret", got)
}

func TestHTTPSource_PayloadCache(t *testing.T) {
	ctx := context.Background()

	t.Run("read through sqlite", func(t *testing.T) {
		var hits atomic.Int32
		srv := newTestServer(t, &hits)

		store, err := iocache.NewCacheStore("payload_cache", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		src := NewHTTPSource(srv.URL, time.Second, WithCache(store, time.Hour, false))
		for range 3 {
			specs, err := src.ListSpecs(ctx, "petstore")
			require.NoError(t, err)
			require.Len(t, specs, 1)
		}
		assert.Equal(t, int32(1), hits.Load())

		// Different bodies are cached separately
		_, err = src.DiffSpecs(ctx, "petstore", "a", "b")
		require.NoError(t, err)
		_, err = src.DiffSpecs(ctx, "petstore", "a", "c")
		require.NoError(t, err)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("expired entries are refetched", func(t *testing.T) {
		var hits atomic.Int32
		srv := newTestServer(t, &hits)

		store, err := iocache.NewCacheStore("payload_cache", schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		now := time.Unix(1_700_000_000, 0)
		src := NewHTTPSource(srv.URL, time.Second, WithCache(store, time.Minute, false), withClock(func() time.Time { return now }))

		_, err = src.ListSpecs(ctx, "petstore")
		require.NoError(t, err)
		now = now.Add(30 * time.Second)
		_, err = src.ListSpecs(ctx, "petstore")
		require.NoError(t, err)
		assert.Equal(t, int32(1), hits.Load())

		now = now.Add(time.Minute)
		_, err = src.ListSpecs(ctx, "petstore")
		require.NoError(t, err)
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("refresh bypasses reads", func(t *testing.T) {
		var hits atomic.Int32
		srv := newTestServer(t, &hits)

		store := &iocache.MockCacheStore{}
		store.On("Set", "GET /services/petstore/specs", []byte(specsBody), contract.PayloadCacheVersion, mock.AnythingOfType("int64")).Return(nil).Twice()

		src := NewHTTPSource(srv.URL, time.Second, WithCache(store, time.Hour, true))
		for range 2 {
			_, err := src.ListSpecs(ctx, "petstore")
			require.NoError(t, err)
		}
		assert.Equal(t, int32(2), hits.Load())
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "Get", mock.Anything)
	})

	t.Run("stale version is ignored", func(t *testing.T) {
		var hits atomic.Int32
		srv := newTestServer(t, &hits)

		store := &iocache.MockCacheStore{}
		store.On("Get", "GET /services/petstore/specs").Return([]byte(`[]`), contract.PayloadCacheVersion+1, time.Now().Unix(), nil)
		store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		specs, err := NewHTTPSource(srv.URL, time.Second, WithCache(store, time.Hour, false)).ListSpecs(ctx, "petstore")
		require.NoError(t, err)
		assert.Len(t, specs, 1)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("cache miss", func(t *testing.T) {
		var hits atomic.Int32
		srv := newTestServer(t, &hits)

		store := &iocache.MockCacheStore{}
		store.On("Get", mock.Anything).Return(nil, 0, int64(0), sql.ErrNoRows)
		store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

		specs, err := NewHTTPSource(srv.URL, time.Second, WithCache(store, time.Hour, false)).ListSpecs(ctx, "petstore")
		require.NoError(t, err, "cache write failures are not fatal")
		assert.Len(t, specs, 1)
	})
}
