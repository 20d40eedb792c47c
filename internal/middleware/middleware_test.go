package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "comlab/internal/errors"
	"comlab/internal/logger"
	"comlab/internal/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	t.Run("generates an ID when none is sent", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := rec.Header().Get("X-Request-ID")
		if !uuid.IsValid(id) {
			t.Fatalf("expected a UUID request id, got %q", id)
		}
		if rec.Body.String() != id {
			t.Errorf("handler saw %q, header has %q", rec.Body.String(), id)
		}
	})

	t.Run("reuses a well-formed incoming ID", func(t *testing.T) {
		incoming := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", incoming)
		rec := serve(r, req)
		if got := rec.Header().Get("X-Request-ID"); got != incoming {
			t.Errorf("expected %s, got %s", incoming, got)
		}
	})

	t.Run("replaces a malformed incoming ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid")
		rec := serve(r, req)
		if got := rec.Header().Get("X-Request-ID"); got == "not-a-uuid" || !uuid.IsValid(got) {
			t.Errorf("expected a fresh UUID, got %q", got)
		}
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrUnitNotFound)
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})

	t.Run("app error keeps its status", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/app", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != `{"code":"UNIT_NOT_FOUND","error":"Computer unit not found","success":false}` {
			t.Errorf("unexpected body %s", body)
		}
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/plain", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("written responses are left alone", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/written", nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("expected 418, got %d", rec.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"*"}))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://anywhere.test")
		rec := serve(r, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected *, got %q", got)
		}
	})

	t.Run("allow list", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"http://lab.local/"}))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://lab.local")
		if got := serve(r, req).Header().Get("Access-Control-Allow-Origin"); got != "http://lab.local" {
			t.Errorf("expected echoed origin, got %q", got)
		}

		req = httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://evil.test")
		if got := serve(r, req).Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("expected no allow header, got %q", got)
		}
	})

	t.Run("preflight is answered", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"*"}))
		r.POST("/x", func(c *gin.Context) { t.Fatal("handler must not run for OPTIONS") })

		rec := serve(r, httptest.NewRequest(http.MethodOptions, "/x", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
	})
}

type observed struct {
	method, route string
	status        int
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observed
}

func (o *recordingObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observed{method, route, status})
}

func TestMetrics(t *testing.T) {
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/users/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/users/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/users/2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if len(obs.seen) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(obs.seen))
	}
	if obs.seen[0].route != "/users/:id" || obs.seen[1].route != "/users/:id" {
		t.Errorf("expected route template, got %+v", obs.seen[:2])
	}
	if obs.seen[2].route != "unmatched" || obs.seen[2].status != http.StatusNotFound {
		t.Errorf("unexpected unmatched observation %+v", obs.seen[2])
	}
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func TestRateLimit(t *testing.T) {
	newRouter := func(l *stubLimiter, useNil bool) *gin.Engine {
		r := gin.New()
		if useNil {
			r.Use(RateLimit(nil, time.Minute))
		} else {
			r.Use(RateLimit(l, 30*time.Second))
		}
		r.POST("/kiosk", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("nil limiter passes through", func(t *testing.T) {
		rec := serve(newRouter(nil, true), httptest.NewRequest(http.MethodPost, "/kiosk", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("allowed request reaches the handler", func(t *testing.T) {
		l := &stubLimiter{allow: true}
		req := httptest.NewRequest(http.MethodPost, "/kiosk", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		rec := serve(newRouter(l, false), req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if len(l.keys) != 1 || l.keys[0] != "10.0.0.7" {
			t.Errorf("expected client IP key, got %v", l.keys)
		}
	})

	t.Run("denied request gets 429", func(t *testing.T) {
		rec := serve(newRouter(&stubLimiter{allow: false}, false), httptest.NewRequest(http.MethodPost, "/kiosk", nil))
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		if got := rec.Header().Get("Retry-After"); got != "30" {
			t.Errorf("expected Retry-After 30, got %q", got)
		}
	})

	t.Run("limiter error fails open", func(t *testing.T) {
		rec := serve(newRouter(&stubLimiter{err: errors.New("redis down")}, false), httptest.NewRequest(http.MethodPost, "/kiosk", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}
