package product

import (
	"context"
	"testing"

	"github.com/Meseret1G/inventory-management-system/pkg/db/models"
	pkgerrors "github.com/Meseret1G/inventory-management-system/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	createFn       func(ctx context.Context, product *models.Product) (*models.Product, error)
	saveFn         func(ctx context.Context, product *models.Product) (*models.Product, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	listFn         func(ctx context.Context, input ListProductsInput) ([]models.Product, map[uuid.UUID]string, error)
	listLowStockFn func(ctx context.Context) ([]models.Product, map[uuid.UUID]string, error)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if f.createFn != nil {
		return f.createFn(ctx, product)
	}
	product.ID = uuid.New()
	return product, nil
}

func (f *fakeProductRepo) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if f.saveFn != nil {
		return f.saveFn(ctx, product)
	}
	return product, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) List(ctx context.Context, input ListProductsInput) ([]models.Product, map[uuid.UUID]string, error) {
	if f.listFn != nil {
		return f.listFn(ctx, input)
	}
	return nil, nil, nil
}

func (f *fakeProductRepo) ListLowStock(ctx context.Context) ([]models.Product, map[uuid.UUID]string, error) {
	if f.listLowStockFn != nil {
		return f.listLowStockFn(ctx)
	}
	return nil, nil, nil
}

type fakeCategoryLoader struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

func (f *fakeCategoryLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func knownCategoryLoader(category *models.Category) *fakeCategoryLoader {
	return &fakeCategoryLoader{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Category, error) {
			if id == category.ID {
				return category, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func newTestService(t *testing.T, repo *fakeProductRepo, categories *fakeCategoryLoader) Service {
	t.Helper()
	svc, err := NewService(repo, categories)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func intPtr(v int) *int { return &v }

func TestCreateProductDefaults(t *testing.T) {
	category := &models.Category{ID: uuid.New(), Name: "Cables"}
	var created *models.Product
	repo := &fakeProductRepo{
		createFn: func(ctx context.Context, product *models.Product) (*models.Product, error) {
			product.ID = uuid.New()
			created = product
			return product, nil
		},
	}
	svc := newTestService(t, repo, knownCategoryLoader(category))

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		SKU:        " CAB-001 ",
		Name:       "HDMI Cable",
		Price:      decimal.RequireFromString("9.999"),
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.SKU != "CAB-001" {
		t.Fatalf("expected trimmed sku, got %q", created.SKU)
	}
	if created.Quantity != 0 {
		t.Fatalf("expected zero default quantity, got %d", created.Quantity)
	}
	if created.LowStockThreshold != defaultLowStockThreshold {
		t.Fatalf("expected default threshold, got %d", created.LowStockThreshold)
	}
	if !created.Price.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected rounded price, got %s", created.Price)
	}
	if dto.Category == nil || dto.Category.Name != "Cables" {
		t.Fatalf("expected embedded category, got %+v", dto.Category)
	}
	if !dto.IsLowStock {
		t.Fatal("zero quantity with default threshold should flag low stock")
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc := newTestService(t, &fakeProductRepo{}, &fakeCategoryLoader{})

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		SKU:        "CAB-001",
		Name:       "HDMI Cable",
		Price:      decimal.NewFromInt(10),
		CategoryID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["category_id"] == "" {
		t.Fatalf("expected category_id detail, got %+v", typed.Details())
	}
}

func TestCreateProductNegativeValues(t *testing.T) {
	category := &models.Category{ID: uuid.New(), Name: "Cables"}
	svc := newTestService(t, &fakeProductRepo{}, knownCategoryLoader(category))

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{
			name: "price",
			input: CreateProductInput{
				SKU: "A", Name: "A", Price: decimal.NewFromInt(-1), CategoryID: category.ID,
			},
		},
		{
			name: "quantity",
			input: CreateProductInput{
				SKU: "A", Name: "A", Price: decimal.NewFromInt(1), Quantity: intPtr(-1), CategoryID: category.ID,
			},
		},
		{
			name: "threshold",
			input: CreateProductInput{
				SKU: "A", Name: "A", Price: decimal.NewFromInt(1), LowStockThreshold: intPtr(-1), CategoryID: category.ID,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateProductPartial(t *testing.T) {
	category := &models.Category{ID: uuid.New(), Name: "Cables"}
	existing := &models.Product{
		ID:                uuid.New(),
		SKU:               "CAB-001",
		Name:              "HDMI Cable",
		Price:             decimal.RequireFromString("9.50"),
		Quantity:          25,
		CategoryID:        category.ID,
		LowStockThreshold: 10,
	}
	repo := &fakeProductRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			return existing, nil
		},
	}
	svc := newTestService(t, repo, knownCategoryLoader(category))

	newName := "HDMI Cable 2m"
	dto, err := svc.UpdateProduct(context.Background(), existing.ID, UpdateProductInput{Name: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Name != "HDMI Cable 2m" {
		t.Fatalf("unexpected name %q", dto.Name)
	}
	if dto.SKU != "CAB-001" {
		t.Fatalf("sku should be untouched, got %q", dto.SKU)
	}
	if dto.IsLowStock {
		t.Fatal("25 on hand with threshold 10 is not low stock")
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := newTestService(t, &fakeProductRepo{}, &fakeCategoryLoader{})
	name := "X"
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListProductsRejectsUnknownOrdering(t *testing.T) {
	svc := newTestService(t, &fakeProductRepo{}, &fakeCategoryLoader{})
	_, err := svc.ListProducts(context.Background(), ListProductsInput{Ordering: "sku"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListProductsBuildsDTOs(t *testing.T) {
	categoryID := uuid.New()
	repo := &fakeProductRepo{
		listFn: func(ctx context.Context, input ListProductsInput) ([]models.Product, map[uuid.UUID]string, error) {
			if input.Query != "cable" {
				t.Fatalf("expected query to pass through, got %q", input.Query)
			}
			return []models.Product{
					{ID: uuid.New(), SKU: "CAB-001", Name: "HDMI Cable", Quantity: 3, LowStockThreshold: 10, CategoryID: categoryID},
					{ID: uuid.New(), SKU: "CAB-002", Name: "DP Cable", Quantity: 30, LowStockThreshold: 10, CategoryID: categoryID},
				}, map[uuid.UUID]string{categoryID: "Cables"}, nil
		},
	}
	svc := newTestService(t, repo, &fakeCategoryLoader{})

	result, err := svc.ListProducts(context.Background(), ListProductsInput{Query: "cable", Ordering: "-quantity"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("unexpected count %d", result.Count)
	}
	if !result.Products[0].IsLowStock || result.Products[1].IsLowStock {
		t.Fatalf("low stock flags wrong: %+v", result.Products)
	}
	if result.Products[0].Category == nil || result.Products[0].Category.Name != "Cables" {
		t.Fatalf("expected category summary, got %+v", result.Products[0].Category)
	}
}

func TestLowStockReportFlagsEveryRow(t *testing.T) {
	repo := &fakeProductRepo{
		listLowStockFn: func(ctx context.Context) ([]models.Product, map[uuid.UUID]string, error) {
			return []models.Product{
				{ID: uuid.New(), SKU: "A", Name: "A", Quantity: 0, LowStockThreshold: 10},
				{ID: uuid.New(), SKU: "B", Name: "B", Quantity: 10, LowStockThreshold: 10},
			}, nil, nil
		},
	}
	svc := newTestService(t, repo, &fakeCategoryLoader{})

	result, err := svc.LowStockReport(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, p := range result.Products {
		if !p.IsLowStock {
			t.Fatalf("report row %s not flagged low stock", p.SKU)
		}
	}
}
