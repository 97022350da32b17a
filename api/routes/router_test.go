package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	product "github.com/Meseret1G/inventory-management-system/internal/products"
	stocksvc "github.com/Meseret1G/inventory-management-system/internal/stock"
	pkgAuth "github.com/Meseret1G/inventory-management-system/pkg/auth"
	"github.com/Meseret1G/inventory-management-system/pkg/config"
	"github.com/google/uuid"
)

type allowAllSessions struct{}

func (allowAllSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubStockService struct {
	adjustFn func(ctx context.Context, productID uuid.UUID, userID *uuid.UUID, input stocksvc.AdjustStockInput) (*stocksvc.AdjustStockResult, error)
}

func (s *stubStockService) AdjustStock(ctx context.Context, productID uuid.UUID, userID *uuid.UUID, input stocksvc.AdjustStockInput) (*stocksvc.AdjustStockResult, error) {
	if s.adjustFn != nil {
		return s.adjustFn(ctx, productID, userID, input)
	}
	return &stocksvc.AdjustStockResult{Product: &product.ProductDTO{Quantity: 15}}, nil
}

func (s *stubStockService) ListMovements(ctx context.Context, productID uuid.UUID) (*stocksvc.MovementListResult, error) {
	return &stocksvc.MovementListResult{Movements: []stocksvc.MovementDTO{}}, nil
}

type okPinger struct{}

func (okPinger) Ping(ctx context.Context) error { return nil }

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "inventory-api",
			ExpirationMinutes: 30,
		},
	}
}

func bearerFor(t *testing.T, cfg *config.Config, isSuperuser bool) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:      uuid.New(),
		Email:       "clerk@example.com",
		IsSuperuser: isSuperuser,
		JTI:         "session-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func serve(router http.Handler, method, target, bearer, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// The catalog write routes sit behind the superuser gate while stock
// adjustments stay open to any authenticated user. The category and product
// services are deliberately nil here: a 403 proves the request never reached
// a handler, and anything else would surface as a 500 instead.
func TestRouterAccessPolicyByRole(t *testing.T) {
	cfg := testRouterConfig()
	router := NewRouter(RouterParams{
		Config:         cfg,
		SessionChecker: allowAllSessions{},
		StockService:   &stubStockService{},
	})

	productID := uuid.NewString()
	adjustBody := `{"quantity_change": -5, "reason": "damaged in transit"}`

	cases := []struct {
		name        string
		method      string
		target      string
		body        string
		isSuperuser bool
		want        int
	}{
		{"clerk create category", http.MethodPost, "/api/v1/categories/", `{"name":"Cables"}`, false, http.StatusForbidden},
		{"clerk delete category", http.MethodDelete, "/api/v1/categories/" + uuid.NewString(), "", false, http.StatusForbidden},
		{"clerk create product", http.MethodPost, "/api/v1/products/", `{"sku":"X"}`, false, http.StatusForbidden},
		{"clerk patch product", http.MethodPatch, "/api/v1/products/" + productID, `{"name":"HDMI"}`, false, http.StatusForbidden},
		{"clerk adjusts stock", http.MethodPost, "/api/v1/products/" + productID + "/adjust-stock", adjustBody, false, http.StatusOK},
		{"superuser adjusts stock", http.MethodPost, "/api/v1/products/" + productID + "/adjust-stock", adjustBody, true, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(router, tc.method, tc.target, bearerFor(t, cfg, tc.isSuperuser), tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouterAdjustStockForwardsCaller(t *testing.T) {
	cfg := testRouterConfig()
	var gotUserID *uuid.UUID
	router := NewRouter(RouterParams{
		Config:         cfg,
		SessionChecker: allowAllSessions{},
		StockService: &stubStockService{
			adjustFn: func(ctx context.Context, productID uuid.UUID, userID *uuid.UUID, input stocksvc.AdjustStockInput) (*stocksvc.AdjustStockResult, error) {
				gotUserID = userID
				return &stocksvc.AdjustStockResult{Product: &product.ProductDTO{Quantity: 15}}, nil
			},
		},
	})

	target := "/api/v1/products/" + uuid.NewString() + "/adjust-stock"
	rec := serve(router, http.MethodPost, target, bearerFor(t, cfg, false), `{"quantity_change": -5, "reason": "damaged"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID == nil {
		t.Fatal("expected the authenticated user id to reach the service")
	}
}

func TestRouterUnauthenticatedRejected(t *testing.T) {
	router := NewRouter(RouterParams{
		Config:         testRouterConfig(),
		SessionChecker: allowAllSessions{},
	})

	rec := serve(router, http.MethodGet, "/api/v1/products/", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouterReadySkipsAbsentRedis(t *testing.T) {
	router := NewRouter(RouterParams{
		Config:         testRouterConfig(),
		SessionChecker: allowAllSessions{},
		DBPinger:       okPinger{},
		RedisClient:    nil,
	})

	rec := serve(router, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data struct {
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Checks["redis"] != "skipped" {
		t.Fatalf("expected redis skipped, got %q", body.Data.Checks["redis"])
	}
	if body.Data.Checks["database"] != "up" {
		t.Fatalf("expected database up, got %q", body.Data.Checks["database"])
	}
}
