package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bacdepzai/orderdesk/internal/config"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/infrastructure/memory"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/handler"
	"github.com/gin-gonic/gin"
)

type staticResolver map[string]enum.Role

func (r staticResolver) RoleFromToken(token string) enum.Role {
	if role, ok := r[token]; ok {
		return role
	}
	return enum.RoleSale
}

func newEngine(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)
	return r
}

func serve(r http.Handler, method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerRole(t *testing.T) {
	r := newEngine(RoleMiddleware(staticResolver{"good": enum.RoleOwner}))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, string(handler.GetRole(c)))
	})

	tests := []struct {
		name   string
		header string
		want   enum.Role
	}{
		{"no header", "", enum.RoleSale},
		{"owner token", "Bearer good", enum.RoleOwner},
		{"lowercase scheme", "bearer good", enum.RoleOwner},
		{"unknown token", "Bearer other", enum.RoleSale},
		{"wrong scheme", "Basic good", enum.RoleSale},
		{"extra parts", "Bearer good extra", enum.RoleSale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, "/whoami", "Authorization", tt.header)
			if got := enum.Role(w.Body.String()); got != tt.want {
				t.Errorf("role = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	r := newEngine(RoleMiddleware(staticResolver{"good": enum.RoleOwner}))
	r.GET("/secret", RequireOwner(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	if w := serve(r, http.MethodGet, "/secret"); w.Code != http.StatusForbidden {
		t.Errorf("sale = %d, want 403", w.Code)
	}
	if w := serve(r, http.MethodGet, "/secret", "Authorization", "Bearer good"); w.Code != http.StatusOK {
		t.Errorf("owner = %d, want 200", w.Code)
	}
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(PerWindow(2, 60))
	defer rl.Stop()

	r := newEngine(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 2; i++ {
		if w := serve(r, http.MethodGet, "/ping"); w.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, w.Code)
		}
	}
	w := serve(r, http.MethodGet, "/ping")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}

	if got := rl.Stats()["active_clients"]; got != 1 {
		t.Errorf("active_clients = %v, want 1", got)
	}
}

func TestPerWindow(t *testing.T) {
	cfg := PerWindow(0, 0)
	if cfg.BurstSize != 1 || cfg.RequestsPerSecond != 1 {
		t.Errorf("zero window = %+v, want 1 per second", cfg)
	}
	cfg = PerWindow(10, 60)
	if cfg.BurstSize != 10 {
		t.Errorf("BurstSize = %d, want 10", cfg.BurstSize)
	}
}

func TestIdempotency(t *testing.T) {
	calls := 0
	status := http.StatusConflict

	r := newEngine(Idempotency(IdempotencyConfig{Repo: memory.NewIdempotencyRepository()}))
	r.POST("/save", func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": calls})
	})

	key := []string{IdempotencyKeyHeader, "k-1"}

	if w := serve(r, http.MethodPost, "/save", key...); w.Code != http.StatusConflict {
		t.Fatalf("first = %d", w.Code)
	}

	status = http.StatusCreated
	first := serve(r, http.MethodPost, "/save", key...)
	if first.Code != http.StatusCreated || calls != 2 {
		t.Fatalf("a refused request must not be replayed: code %d, calls %d", first.Code, calls)
	}

	replay := serve(r, http.MethodPost, "/save", key...)
	if calls != 2 {
		t.Errorf("handler ran on replay, calls = %d", calls)
	}
	if replay.Code != http.StatusCreated || replay.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %s, want %s", replay.Code, replay.Body.String(), first.Body.String())
	}
	if replay.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replay header missing")
	}

	if w := serve(r, http.MethodPost, "/save"); !strings.Contains(w.Body.String(), `"call":3`) {
		t.Errorf("request without a key should reach the handler: %s", w.Body.String())
	}
}

func TestIdempotencyKeyedByRole(t *testing.T) {
	calls := 0
	r := newEngine(
		RoleMiddleware(staticResolver{"good": enum.RoleOwner}),
		Idempotency(IdempotencyConfig{Repo: memory.NewIdempotencyRepository()}),
	)
	r.POST("/save", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"role": handler.GetRole(c), "call": calls})
	})

	owner := []string{IdempotencyKeyHeader, "k-1", "Authorization", "Bearer good"}
	sale := []string{IdempotencyKeyHeader, "k-1"}

	first := serve(r, http.MethodPost, "/save", owner...)
	if first.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("owner = %d, calls %d", first.Code, calls)
	}

	w := serve(r, http.MethodPost, "/save", sale...)
	if calls != 2 || w.Header().Get("X-Idempotency-Replayed") != "" {
		t.Fatalf("sale got the owner reply: calls %d, body %s", calls, w.Body.String())
	}
	if strings.Contains(w.Body.String(), string(enum.RoleOwner)) {
		t.Errorf("sale body = %s", w.Body.String())
	}

	again := serve(r, http.MethodPost, "/save", owner...)
	if calls != 2 || again.Body.String() != first.Body.String() {
		t.Errorf("owner repeat should replay: calls %d, body %s", calls, again.Body.String())
	}
}

func TestCORSExposesDownloadHeaders(t *testing.T) {
	origins := []string{"http://localhost:5173"}
	r := newEngine(CORSMiddleware(&config.CORSConfig{}))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "x") })

	w := serve(r, http.MethodGet, "/x", "Origin", origins[0])
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != origins[0] {
		t.Fatalf("Allow-Origin = %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition") {
		t.Error("Content-Disposition must be exposed for downloads")
	}
}
