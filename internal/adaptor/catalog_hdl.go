package adaptor

import (
	"net/http"

	"servicehub/internal/usecase"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

// ListServices handles GET /api/services?category=&search=
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	services, err := h.service.ListServices(r.Context(), category, search)
	if err != nil {
		respondServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "Services retrieved", services)
}

// GetService handles GET /api/services/{id}
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")

	detail, err := h.service.GetService(r.Context(), serviceID)
	if err != nil {
		respondServiceError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "Service retrieved", detail)
}

// Quote handles GET /api/services/{id}/packages/{packageId}/quote
func (h *CatalogHandler) Quote(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	packageID := chi.URLParam(r, "packageId")

	quote, err := h.service.Quote(r.Context(), serviceID, packageID)
	if err != nil {
		respondServiceError(w, h.log, err, "quote offering")
		return
	}

	utils.ResponseSuccess(w, "Quote computed", quote)
}
