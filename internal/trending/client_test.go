package trending

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nao1215/trendwatch/internal/model"
)

func TestClientFetchTrending(t *testing.T) {
	t.Parallel()

	t.Run("parses served page", func(t *testing.T) {
		t.Parallel()

		var gotUserAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(sampleTrendingHTML))
		}))
		defer srv.Close()

		extractor, err := NewExtractor("https://github.com")
		if err != nil {
			t.Fatal(err)
		}
		client := NewClient(extractor,
			WithTrendingURL(srv.URL),
			WithUserAgent("trendwatch-test"),
		)

		projects, err := client.FetchTrending(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(projects) != 3 {
			t.Errorf("len(projects) = %d, want 3", len(projects))
		}
		if gotUserAgent != "trendwatch-test" {
			t.Errorf("User-Agent = %q, want %q", gotUserAgent, "trendwatch-test")
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		extractor, err := NewExtractor("https://github.com")
		if err != nil {
			t.Fatal(err)
		}
		client := NewClient(extractor, WithTrendingURL(srv.URL))

		if _, err := client.FetchTrending(context.Background()); err == nil {
			t.Error("FetchTrending() error = nil, want status error")
		}
	})

	t.Run("unreachable server is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // immediately, so the address refuses connections

		extractor, err := NewExtractor("https://github.com")
		if err != nil {
			t.Fatal(err)
		}
		client := NewClient(extractor, WithTrendingURL(srv.URL))

		if _, err := client.FetchTrending(context.Background()); err == nil {
			t.Error("FetchTrending() error = nil, want connection error")
		}
	})
}

func TestClientHealthCheck(t *testing.T) {
	t.Parallel()

	t.Run("healthy origin", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		extractor, err := NewExtractor("https://github.com")
		if err != nil {
			t.Fatal(err)
		}
		client := NewClient(extractor, WithHealthURL(srv.URL))

		health := client.HealthCheck(context.Background())
		if health.Status != model.HealthStatusHealthy {
			t.Errorf("Status = %q, want %q", health.Status, model.HealthStatusHealthy)
		}
		if health.Error != "" {
			t.Errorf("Error = %q, want empty", health.Error)
		}
		if health.Timestamp.IsZero() {
			t.Error("Timestamp is zero, want probe time")
		}
	})

	t.Run("server error is unhealthy", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		extractor, err := NewExtractor("https://github.com")
		if err != nil {
			t.Fatal(err)
		}
		client := NewClient(extractor, WithHealthURL(srv.URL))

		health := client.HealthCheck(context.Background())
		if health.Status != model.HealthStatusUnhealthy {
			t.Errorf("Status = %q, want %q", health.Status, model.HealthStatusUnhealthy)
		}
		if health.Error == "" {
			t.Error("Error is empty, want status description")
		}
	})

	t.Run("unreachable origin is unhealthy not fatal", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		extractor, err := NewExtractor("https://github.com")
		if err != nil {
			t.Fatal(err)
		}
		client := NewClient(extractor, WithHealthURL(srv.URL))

		health := client.HealthCheck(context.Background())
		if health.Status != model.HealthStatusUnhealthy {
			t.Errorf("Status = %q, want %q", health.Status, model.HealthStatusUnhealthy)
		}
	})
}
