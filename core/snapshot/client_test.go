package snapshot_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forsaj/sitecontent/core/kv"
	"github.com/forsaj/sitecontent/core/snapshot"
)

func TestClientFetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("structured endpoint preferred", func(t *testing.T) {
		var flatCalled bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/site-new-struct":
				w.Write([]byte(`{"resources":{"site-content":[{"page_id":"About","title":"Haqqımızda"}]}}`))
			case "/api/site-content":
				flatCalled = true
				w.Write([]byte(`[]`))
			}
		}))
		defer srv.Close()

		client := snapshot.NewClient(srv.URL)
		pages, err := client.Fetch(ctx)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "about", pages[0].ID)
		assert.False(t, flatCalled)
	})

	t.Run("structured payload may be a bare array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/site-new-struct", r.URL.Path)
			w.Write([]byte(`[{"id":"home"}]`))
		}))
		defer srv.Close()

		pages, err := snapshot.NewClient(srv.URL).Fetch(ctx)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "home", pages[0].ID)
	})

	t.Run("falls back to flat on structured failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/site-new-struct":
				w.WriteHeader(http.StatusInternalServerError)
			case "/api/site-content":
				w.Write([]byte(`[{"id":"home"}]`))
			}
		}))
		defer srv.Close()

		pages, err := snapshot.NewClient(srv.URL).Fetch(ctx)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "home", pages[0].ID)
	})

	t.Run("falls back when the resource key is absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/site-new-struct":
				w.Write([]byte(`{"resources":{"other":"stuff"}}`))
			case "/api/site-content":
				w.Write([]byte(`[{"id":"home"}]`))
			}
		}))
		defer srv.Close()

		pages, err := snapshot.NewClient(srv.URL).Fetch(ctx)
		require.NoError(t, err)
		require.Len(t, pages, 1)
	})

	t.Run("falls back when the resource is malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/site-new-struct":
				w.Write([]byte(`{"resources":{"site-content":"not an array"}}`))
			case "/api/site-content":
				w.Write([]byte(`[{"id":"home"}]`))
			}
		}))
		defer srv.Close()

		pages, err := snapshot.NewClient(srv.URL).Fetch(ctx)
		require.NoError(t, err)
		require.Len(t, pages, 1)
	})

	t.Run("both sources failing surfaces a fetch error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := snapshot.NewClient(srv.URL).Fetch(ctx)
		assert.ErrorIs(t, err, snapshot.ErrFetchFailed)
	})

	t.Run("version marker rides along as a query parameter", func(t *testing.T) {
		var gotVersion string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotVersion = r.URL.Query().Get("v")
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		state := kv.NewMemory()
		require.NoError(t, state.Set(ctx, kv.ContentVersionKey, "v 17"))

		client := snapshot.NewClient(srv.URL, snapshot.WithVersionStore(state))
		_, err := client.Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v 17", gotVersion)
	})
}
