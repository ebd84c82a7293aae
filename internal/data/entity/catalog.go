package entity

import "time"

// CatalogService is a bookable home service. IDs are the short numeric
// strings the front end links with ("1".."10"), not UUIDs.
type CatalogService struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	Category      string    `db:"category"`
	StartingPrice float64   `db:"starting_price"`
	Duration      string    `db:"duration"`
	Rating        float64   `db:"rating"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// PricedOffering is a versioned, precomputed package snapshot for one
// service. Prices are computed once at seed time so checkout always
// operates on a stable record rather than a render-time multiplication.
type PricedOffering struct {
	ServiceID   string    `db:"service_id"`
	PackageID   string    `db:"package_id"`
	ServiceName string    `db:"service_name"`
	PackageName string    `db:"package_name"`
	Description string    `db:"description"`
	UnitPrice   float64   `db:"unit_price"`
	Features    []string  `db:"features"`
	Warranty    string    `db:"warranty"`
	Version     int       `db:"version"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
