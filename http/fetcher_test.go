package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	foxhttp "github.com/fwojciec/foxmark/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("captures status, body, and content type", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, "<html>hello</html>")
		}))
		t.Cleanup(srv.Close)

		res, err := foxhttp.NewFetcher().Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)
		assert.Equal(t, "<html>hello</html>", string(res.Body))
		assert.Equal(t, "text/html; charset=utf-8", res.ContentType)
		assert.Equal(t, srv.URL, res.FinalURL)
	})

	t.Run("follows redirects and reports the final URL", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/end", http.StatusFound)
		})
		mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "arrived")
		})
		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)

		res, err := foxhttp.NewFetcher().Fetch(context.Background(), srv.URL+"/start")
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)
		assert.Equal(t, "arrived", string(res.Body))
		assert.Equal(t, srv.URL+"/end", res.FinalURL)
	})

	t.Run("caps redirect chains", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
		}))
		t.Cleanup(srv.Close)

		_, err := foxhttp.NewFetcher(foxhttp.WithMaxRedirects(2)).Fetch(context.Background(), srv.URL)
		require.Error(t, err)
	})

	t.Run("non-200 status returns a result, not an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		res, err := foxhttp.NewFetcher().Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, 404, res.StatusCode)
	})

	t.Run("transport failure returns an error", func(t *testing.T) {
		t.Parallel()

		// A server that is already closed refuses connections.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := foxhttp.NewFetcher(foxhttp.WithTimeout(time.Second)).Fetch(context.Background(), url)
		require.Error(t, err)
	})
}
