package controllers

import (
	"net/http"

	"github.com/Meseret1G/inventory-management-system/api/responses"
	productsvc "github.com/Meseret1G/inventory-management-system/internal/products"
	pkgerrors "github.com/Meseret1G/inventory-management-system/pkg/errors"
	"github.com/Meseret1G/inventory-management-system/pkg/logger"
)

// LowStockReport returns every product at or below its reorder threshold.
// The report is intentionally unpaginated; it is a restocking worklist.
func LowStockReport(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		result, err := svc.LowStockReport(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
