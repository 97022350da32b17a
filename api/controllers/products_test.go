package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productsvc "github.com/Meseret1G/inventory-management-system/internal/products"
	pkgerrors "github.com/Meseret1G/inventory-management-system/pkg/errors"
)

type stubProductService struct {
	createFn   func(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error)
	updateFn   func(ctx context.Context, id uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
	getFn      func(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error)
	listFn     func(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error)
	lowStockFn func(ctx context.Context) (*productsvc.ProductListResult, error)
}

func (s *stubProductService) CreateProduct(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProductService) GetProduct(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) ListProducts(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubProductService) LowStockReport(ctx context.Context) (*productsvc.ProductListResult, error) {
	return s.lowStockFn(ctx)
}

func requestWithParam(method, target, param, value string, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestProductListPassesFilters(t *testing.T) {
	categoryID := uuid.New()
	svc := &stubProductService{
		listFn: func(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
			if input.Query != "cable" || input.Ordering != "-price" {
				t.Fatalf("unexpected input %+v", input)
			}
			if input.CategoryID == nil || *input.CategoryID != categoryID {
				t.Fatalf("category filter missing: %+v", input)
			}
			if input.Quantity == nil || *input.Quantity != 5 {
				t.Fatalf("quantity filter missing: %+v", input)
			}
			return &productsvc.ProductListResult{Count: 0, Products: []productsvc.ProductDTO{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?q=cable&ordering=-price&category_id="+categoryID.String()+"&quantity=5", nil)
	rec := httptest.NewRecorder()
	ProductList(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProductListInvalidCategoryID(t *testing.T) {
	svc := &stubProductService{
		listFn: func(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	ProductList(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductDetail(t *testing.T) {
	id := uuid.New()
	svc := &stubProductService{
		getFn: func(ctx context.Context, gotID uuid.UUID) (*productsvc.ProductDTO, error) {
			if gotID != id {
				t.Fatalf("unexpected id %s", gotID)
			}
			return &productsvc.ProductDTO{ID: id, SKU: "CAB-001", Name: "HDMI Cable"}, nil
		},
	}

	req := requestWithParam(http.MethodGet, "/api/v1/products/"+id.String(), "productId", id.String(), "")
	rec := httptest.NewRecorder()
	ProductDetail(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var dto productsvc.ProductDTO
	decodeData(t, rec, &dto)
	if dto.SKU != "CAB-001" {
		t.Fatalf("unexpected sku %q", dto.SKU)
	}
}

func TestProductDetailInvalidID(t *testing.T) {
	svc := &stubProductService{
		getFn: func(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := requestWithParam(http.MethodGet, "/api/v1/products/nope", "productId", "nope", "")
	rec := httptest.NewRecorder()
	ProductDetail(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	svc := &stubProductService{
		getFn: func(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		},
	}

	id := uuid.New()
	req := requestWithParam(http.MethodGet, "/api/v1/products/"+id.String(), "productId", id.String(), "")
	rec := httptest.NewRecorder()
	ProductDetail(svc, nil)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProductCreate(t *testing.T) {
	svc := &stubProductService{
		createFn: func(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
			if input.SKU != "CAB-001" {
				t.Fatalf("unexpected sku %q", input.SKU)
			}
			if !input.Price.Equal(decimal.RequireFromString("9.50")) {
				t.Fatalf("unexpected price %s", input.Price)
			}
			return &productsvc.ProductDTO{ID: uuid.New(), SKU: input.SKU, Name: input.Name}, nil
		},
	}

	body := `{"sku":"CAB-001","name":"HDMI Cable","price":"9.50","category_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ProductCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProductCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubProductService{
		createFn: func(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	body := `{"sku":"CAB-001","name":"x","price":"1.00","category_id":"` + uuid.NewString() + `","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ProductCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductCreateMissingFields(t *testing.T) {
	svc := &stubProductService{
		createFn: func(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ProductCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Error.Details["sku"] == "" {
		t.Fatalf("expected sku detail, got %+v", body.Error.Details)
	}
}

func TestProductServiceMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	ProductList(nil, nil)(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestLowStockReportHandler(t *testing.T) {
	svc := &stubProductService{
		lowStockFn: func(ctx context.Context) (*productsvc.ProductListResult, error) {
			return &productsvc.ProductListResult{
				Count: 1,
				Products: []productsvc.ProductDTO{
					{ID: uuid.New(), SKU: "CAB-001", Quantity: 2, LowStockThreshold: 10, IsLowStock: true},
				},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/low-stock", nil)
	rec := httptest.NewRecorder()
	LowStockReport(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result productsvc.ProductListResult
	decodeData(t, rec, &result)
	if result.Count != 1 || !result.Products[0].IsLowStock {
		t.Fatalf("unexpected result %+v", result)
	}
}
