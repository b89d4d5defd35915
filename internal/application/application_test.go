package application

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/PeterLuschny/FigurativePartitions/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(":8085")
	cfg.MaxSessions = 2
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if app.server == nil || app.router == nil || app.handler == nil || app.metrics == nil {
		t.Fatalf("expected server, router, handler and metrics to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
	for i := 0; i < 2; i++ {
		if _, err := app.store.Create(5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := app.store.Create(5); err == nil {
		t.Fatalf("expected configured session limit to apply")
	}
}

func TestNewWithoutMetrics(t *testing.T) {
	cfg := baseTestConfig(":0")
	cfg.EnableMetrics = false

	app, err := New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.metrics != nil {
		t.Fatalf("expected metrics to be disabled")
	}

	rec := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for /metrics, got %d", rec.Code)
	}
}

func TestServerServesAPIAndMetrics(t *testing.T) {
	app, err := New(baseTestConfig(":0"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	handler := app.server.Handler

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"target":10}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "figurate_sessions_active 1") {
		t.Fatalf("expected session gauge in metrics output")
	}
}

func TestBuildRootHandler(t *testing.T) {
	apiInvoked := false
	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Fatalf("unexpected path passed to API handler: %s", r.URL.Path)
		}
		apiInvoked = true
		w.WriteHeader(http.StatusNoContent)
	})

	handler := BuildRootHandler(apiHandler, nil)

	t.Run("redirects root to the palette", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusFound {
			t.Fatalf("expected status 302, got %d", rec.Code)
		}
		if rec.Header().Get("Location") != "/api/shapes" {
			t.Fatalf("unexpected Location %q", rec.Header().Get("Location"))
		}
	})

	t.Run("returns not found for unknown paths", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("forwards api traffic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
		if !apiInvoked {
			t.Fatalf("expected API handler to be invoked")
		}
	})
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func baseTestConfig(port string) config.Config {
	return config.Config{
		Port:                 port,
		DefaultTarget:        27,
		MaxSessions:          16,
		PreviewLength:        6,
		LogLevel:             "info",
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		EnableMetrics:        true,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
