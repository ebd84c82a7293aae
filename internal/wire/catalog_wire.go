package wire

import (
	"servicehub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// ==================== PUBLIC ROUTES ====================
	// The catalog is browsable without authentication.

	// GET /api/services - List services with optional category/search filter
	r.Get("/api/services", catalogHandler.ListServices)

	// GET /api/services/{id} - Service detail with packages
	r.Get("/api/services/{id}", catalogHandler.GetService)

	// GET /api/services/{id}/packages/{packageId}/quote - Priced quote
	r.Get("/api/services/{id}/packages/{packageId}/quote", catalogHandler.Quote)
}
