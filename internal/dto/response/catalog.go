package response

import (
	"servicehub/internal/data/entity"
)

type ServiceResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	StartingPrice float64 `json:"starting_price"`
	Duration      string  `json:"duration"`
	Rating        float64 `json:"rating"`
}

type PackageResponse struct {
	PackageID   string   `json:"package_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Features    []string `json:"features"`
	Warranty    string   `json:"warranty"`
}

type ServiceDetailResponse struct {
	ServiceResponse
	Packages []PackageResponse `json:"packages"`
}

// QuoteResponse is the priced breakdown shown at checkout. Amounts are
// rounded to 2 decimals; AmountMinorUnits is the exact integer the
// gateway will be charged with.
type QuoteResponse struct {
	ServiceName      string  `json:"service_name"`
	PackageName      string  `json:"package_name"`
	Subtotal         float64 `json:"subtotal"`
	Tax              float64 `json:"tax"`
	Total            float64 `json:"total"`
	Currency         string  `json:"currency"`
	AmountMinorUnits int64   `json:"amount_minor_units"`
}

func ServiceToResponse(svc *entity.CatalogService) ServiceResponse {
	return ServiceResponse{
		ID:            svc.ID,
		Name:          svc.Name,
		Description:   svc.Description,
		Category:      svc.Category,
		StartingPrice: svc.StartingPrice,
		Duration:      svc.Duration,
		Rating:        svc.Rating,
	}
}

func OfferingToPackageResponse(offering *entity.PricedOffering) PackageResponse {
	return PackageResponse{
		PackageID:   offering.PackageID,
		Name:        offering.PackageName,
		Description: offering.Description,
		Price:       offering.UnitPrice,
		Features:    offering.Features,
		Warranty:    offering.Warranty,
	}
}
