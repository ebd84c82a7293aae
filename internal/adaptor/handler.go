package adaptor

import (
	"errors"
	"net/http"

	"servicehub/internal/usecase"
	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Checkout *CheckoutHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, config, log),
		Catalog:  NewCatalogHandler(service.Catalog, log),
		Checkout: NewCheckoutHandler(service.Intent, service.Payment, config, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}

// respondServiceError maps usecase sentinel errors to HTTP responses.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthenticated):
		log.Warn(operation+" failed - unauthenticated", zap.Error(err))
		utils.ResponseUnauthorized(w, "Authentication required")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, usecase.ErrEmailTaken):
		log.Warn(operation+" failed - email taken", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrOfferingNotFound),
		errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrVerificationFailed):
		log.Warn(operation+" failed - verification failed", zap.Error(err))
		utils.ResponseUnprocessable(w, "Payment verification failed", nil)

	case errors.Is(err, usecase.ErrStateConflict):
		log.Warn(operation+" failed - state conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrProcessorUnavailable):
		log.Warn(operation+" failed - processor unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Payment processor unavailable, please retry")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
