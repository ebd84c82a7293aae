package repository

import (
	"fmt"

	"servicehub/internal/data/entity"
)

// seedService is the compact source form of the default catalog.
type seedService struct {
	id            string
	name          string
	description   string
	category      string
	startingPrice float64
	duration      string
	rating        float64
}

var defaultServices = []seedService{
	{"1", "Home Cleaning", "Professional home cleaning services for a spotless living space.", "Cleaning", 499, "3-4 hours", 4.8},
	{"2", "Plumbing Services", "Expert plumbing solutions for all your household needs.", "Repair", 349, "1-2 hours", 4.7},
	{"3", "Electrical Repairs", "Reliable electrical repair and installation services.", "Repair", 399, "1-3 hours", 4.9},
	{"4", "Appliance Repair", "Quick and efficient repair for all home appliances.", "Repair", 449, "1-2 hours", 4.6},
	{"5", "Painting Services", "Transform your space with our professional painting services.", "Renovation", 1999, "1-3 days", 4.8},
	{"6", "Pest Control", "Effective pest control solutions for a healthy home.", "Maintenance", 799, "2-3 hours", 4.7},
	{"7", "Carpentry", "Custom carpentry solutions for your home and office.", "Repair", 599, "2-4 hours", 4.6},
	{"8", "AC Service & Repair", "Comprehensive AC maintenance and repair services.", "Maintenance", 499, "1-2 hours", 4.8},
	{"9", "Bathroom Cleaning", "Deep cleaning services for spotless and hygienic bathrooms.", "Cleaning", 399, "1-2 hours", 4.7},
	{"10", "Gardening Services", "Professional gardening and landscaping for beautiful outdoors.", "Maintenance", 699, "2-4 hours", 4.5},
}

// packageTier defines one of the three fixed tiers derived from a
// service's base price.
type packageTier struct {
	id         string
	name       string
	multiplier float64
	desc       string
	warranty   string
	features   []string
}

var packageTiers = []packageTier{
	{
		id: "1", name: "Basic", multiplier: 1.0,
		desc:     "Essential service package",
		warranty: "30-day warranty",
		features: []string{"Standard service", "30-day warranty", "Customer support"},
	},
	{
		id: "2", name: "Standard", multiplier: 1.5,
		desc:     "Enhanced service package",
		warranty: "60-day warranty",
		features: []string{"Premium service", "60-day warranty", "Priority customer support", "Free follow-up visit"},
	},
	{
		id: "3", name: "Premium", multiplier: 2.0,
		desc:     "Comprehensive service package",
		warranty: "90-day warranty",
		features: []string{"Premium service with additional benefits", "90-day warranty", "24/7 dedicated support", "Two free follow-up visits", "Extended service coverage"},
	},
}

// DefaultCatalog returns the seed data: ten services, each with the three
// package tiers precomputed at 1x / 1.5x / 2x of the base price. Computing
// them here, once, is what keeps checkout pricing stable across page loads.
func DefaultCatalog() ([]*entity.CatalogService, []*entity.PricedOffering) {
	services := make([]*entity.CatalogService, 0, len(defaultServices))
	offerings := make([]*entity.PricedOffering, 0, len(defaultServices)*len(packageTiers))

	for _, s := range defaultServices {
		services = append(services, &entity.CatalogService{
			ID:            s.id,
			Name:          s.name,
			Description:   s.description,
			Category:      s.category,
			StartingPrice: s.startingPrice,
			Duration:      s.duration,
			Rating:        s.rating,
		})

		for _, tier := range packageTiers {
			offerings = append(offerings, &entity.PricedOffering{
				ServiceID:   s.id,
				PackageID:   tier.id,
				ServiceName: s.name,
				PackageName: tier.name,
				Description: fmt.Sprintf("%s for %s", tier.desc, s.name),
				UnitPrice:   s.startingPrice * tier.multiplier,
				Features:    tier.features,
				Warranty:    tier.warranty,
				Version:     1,
			})
		}
	}

	return services, offerings
}
