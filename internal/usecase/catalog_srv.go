package usecase

import (
	"context"
	"fmt"

	"servicehub/internal/data/entity"
	"servicehub/internal/data/repository"
	"servicehub/internal/dto/response"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListServices(ctx context.Context, category, search string) ([]response.ServiceResponse, error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceDetailResponse, error)
	GetOffering(ctx context.Context, serviceID, packageID string) (*entity.PricedOffering, error)
	Quote(ctx context.Context, serviceID, packageID string) (*response.QuoteResponse, error)
}

type catalogService struct {
	repo    *repository.Repository
	pricing *PricingEngine
	log     *zap.Logger
}

func NewCatalogService(repo *repository.Repository, pricing *PricingEngine, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:    repo,
		pricing: pricing,
		log:     log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context, category, search string) ([]response.ServiceResponse, error) {
	services, err := s.repo.Catalog.FindServices(ctx, category, search)
	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}

	serviceResponses := make([]response.ServiceResponse, len(services))
	for i, svc := range services {
		serviceResponses[i] = response.ServiceToResponse(svc)
	}

	return serviceResponses, nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceDetailResponse, error) {
	svc, err := s.repo.Catalog.FindServiceByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to get service", zap.Error(err), zap.String("service_id", serviceID))
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, ErrOfferingNotFound)
	}

	offerings, err := s.repo.Catalog.FindOfferingsByService(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to get offerings", zap.Error(err), zap.String("service_id", serviceID))
		return nil, fmt.Errorf("get offerings: %w", err)
	}

	packages := make([]response.PackageResponse, len(offerings))
	for i, offering := range offerings {
		packages[i] = response.OfferingToPackageResponse(offering)
	}

	return &response.ServiceDetailResponse{
		ServiceResponse: response.ServiceToResponse(svc),
		Packages:        packages,
	}, nil
}

// GetOffering resolves the stable priced snapshot for a service/package
// pair. Everything downstream (quote, initiate) goes through here.
func (s *catalogService) GetOffering(ctx context.Context, serviceID, packageID string) (*entity.PricedOffering, error) {
	offering, err := s.repo.Catalog.FindOffering(ctx, serviceID, packageID)
	if err != nil {
		s.log.Error("Failed to resolve offering",
			zap.Error(err),
			zap.String("service_id", serviceID),
			zap.String("package_id", packageID))
		return nil, fmt.Errorf("resolve offering: %w", err)
	}
	if offering == nil {
		return nil, fmt.Errorf("offering %s/%s: %w", serviceID, packageID, ErrOfferingNotFound)
	}

	return offering, nil
}

func (s *catalogService) Quote(ctx context.Context, serviceID, packageID string) (*response.QuoteResponse, error) {
	offering, err := s.GetOffering(ctx, serviceID, packageID)
	if err != nil {
		return nil, err
	}

	quote := s.pricing.Price(offering)

	return &response.QuoteResponse{
		ServiceName:      offering.ServiceName,
		PackageName:      offering.PackageName,
		Subtotal:         quote.Subtotal,
		Tax:              quote.Tax,
		Total:            quote.Total,
		Currency:         quote.Currency,
		AmountMinorUnits: quote.AmountMinorUnits,
	}, nil
}
