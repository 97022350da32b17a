package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	product "github.com/Meseret1G/inventory-management-system/internal/products"
	"github.com/Meseret1G/inventory-management-system/pkg/db"
	"github.com/Meseret1G/inventory-management-system/pkg/db/models"
	pkgerrors "github.com/Meseret1G/inventory-management-system/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const negativeStockMessage = "resulting stock cannot be negative"

// Service exposes the stock ledger operations.
type Service interface {
	AdjustStock(ctx context.Context, productID uuid.UUID, userID *uuid.UUID, input AdjustStockInput) (*AdjustStockResult, error)
	ListMovements(ctx context.Context, productID uuid.UUID) (*MovementListResult, error)
}

type categoryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	categories categoryLoader
}

// NewService constructs a stock service instance.
func NewService(repo *Repository, dbClient *db.Client, categories categoryLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, dbClient: dbClient, categories: categories}, nil
}

// AdjustStock applies the signed change and appends the audit entry in one
// transaction. The update and the movement commit together or not at all.
func (s *service) AdjustStock(ctx context.Context, productID uuid.UUID, userID *uuid.UUID, input AdjustStockInput) (*AdjustStockResult, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reason is required")
	}
	if input.QuantityChange == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_change is required")
	}
	change := *input.QuantityChange

	var (
		updated  *models.Product
		movement *models.StockMovement
	)

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindProduct(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		changed, err := repo.ApplyQuantityChange(ctx, productID, change)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply quantity change")
		}
		if !changed {
			return pkgerrors.New(pkgerrors.CodeValidation, negativeStockMessage).
				WithDetails(map[string]string{"quantity_change": negativeStockMessage})
		}

		movement, err = repo.CreateMovement(ctx, &models.StockMovement{
			ProductID:      productID,
			UserID:         userID,
			QuantityChange: change,
			Reason:         reason,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record movement")
		}

		updated, err = repo.FindProduct(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	category, err := s.loadCategory(ctx, updated.CategoryID)
	if err != nil {
		return nil, err
	}

	return &AdjustStockResult{
		Product:  product.NewProductDTO(updated, category),
		Movement: NewMovementDTO(movement),
	}, nil
}

// ListMovements returns the audit trail for one product, newest first.
func (s *service) ListMovements(ctx context.Context, productID uuid.UUID) (*MovementListResult, error) {
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	movements, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list movements")
	}

	dtos := make([]MovementDTO, 0, len(movements))
	for i := range movements {
		dtos = append(dtos, *NewMovementDTO(&movements[i]))
	}
	return &MovementListResult{Count: len(dtos), Movements: dtos}, nil
}

func (s *service) loadCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	return category, nil
}
