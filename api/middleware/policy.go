package middleware

import (
	"net/http"

	"github.com/Meseret1G/inventory-management-system/api/responses"
	pkgerrors "github.com/Meseret1G/inventory-management-system/pkg/errors"
	"github.com/Meseret1G/inventory-management-system/pkg/logger"
)

// RequireSuperuser guards catalog mutations. Read access and stock
// adjustments stay open to any authenticated user; everything else on the
// inventory surface needs a superuser.
func RequireSuperuser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsSuperuserFromContext(r.Context()) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "superuser required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
