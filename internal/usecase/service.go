package usecase

import (
	"servicehub/internal/data/repository"
	"servicehub/pkg/gateway"
	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles every usecase behind one value for wiring.
type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Intent  IntentService
	Payment PaymentService
	Booking BookingService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	gw gateway.PaymentGateway,
	log *zap.Logger,
) *Service {
	pricing := NewPricingEngine(config.Pricing.TaxRate, config.Pricing.Currency)
	booking := NewBookingService(repo, log)

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Catalog: NewCatalogService(repo, pricing, log),
		Intent:  NewIntentService(repo, log),
		Payment: NewPaymentService(repo, gw, pricing, booking, log),
		Booking: booking,
	}
}
