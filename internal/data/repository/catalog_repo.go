package repository

import (
	"context"
	"errors"
	"fmt"

	"servicehub/internal/data/entity"
	"servicehub/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CatalogRepository interface {
	FindServices(ctx context.Context, category, search string) ([]*entity.CatalogService, error)
	FindServiceByID(ctx context.Context, id string) (*entity.CatalogService, error)
	FindOffering(ctx context.Context, serviceID, packageID string) (*entity.PricedOffering, error)
	FindOfferingsByService(ctx context.Context, serviceID string) ([]*entity.PricedOffering, error)
	Seed(ctx context.Context, services []*entity.CatalogService, offerings []*entity.PricedOffering) error
}

type catalogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCatalogRepository(db database.PgxIface, log *zap.Logger) CatalogRepository {
	return &catalogRepository{
		db:  db,
		log: log.With(zap.String("repository", "catalog")),
	}
}

func (cr *catalogRepository) FindServices(ctx context.Context, category, search string) ([]*entity.CatalogService, error) {
	query := `
		SELECT id, name, description, category, starting_price, duration,
		       rating, created_at, updated_at
		FROM catalog_services
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY id::int
	`

	rows, err := cr.db.Query(ctx, query, category, search)
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}
	defer rows.Close()

	var services []*entity.CatalogService
	for rows.Next() {
		var svc entity.CatalogService
		if err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Description,
			&svc.Category,
			&svc.StartingPrice,
			&svc.Duration,
			&svc.Rating,
			&svc.CreatedAt,
			&svc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &svc)
	}

	return services, rows.Err()
}

func (cr *catalogRepository) FindServiceByID(ctx context.Context, id string) (*entity.CatalogService, error) {
	query := `
		SELECT id, name, description, category, starting_price, duration,
		       rating, created_at, updated_at
		FROM catalog_services
		WHERE id = $1
	`

	var svc entity.CatalogService
	err := cr.db.QueryRow(ctx, query, id).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.Category,
		&svc.StartingPrice,
		&svc.Duration,
		&svc.Rating,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service %s: %w", id, err)
	}

	return &svc, nil
}

func (cr *catalogRepository) FindOffering(ctx context.Context, serviceID, packageID string) (*entity.PricedOffering, error) {
	query := `
		SELECT service_id, package_id, service_name, package_name, description,
		       unit_price, features, warranty, version, created_at, updated_at
		FROM priced_offerings
		WHERE service_id = $1 AND package_id = $2
	`

	var offering entity.PricedOffering
	err := cr.db.QueryRow(ctx, query, serviceID, packageID).Scan(
		&offering.ServiceID,
		&offering.PackageID,
		&offering.ServiceName,
		&offering.PackageName,
		&offering.Description,
		&offering.UnitPrice,
		&offering.Features,
		&offering.Warranty,
		&offering.Version,
		&offering.CreatedAt,
		&offering.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find offering %s/%s: %w", serviceID, packageID, err)
	}

	return &offering, nil
}

func (cr *catalogRepository) FindOfferingsByService(ctx context.Context, serviceID string) ([]*entity.PricedOffering, error) {
	query := `
		SELECT service_id, package_id, service_name, package_name, description,
		       unit_price, features, warranty, version, created_at, updated_at
		FROM priced_offerings
		WHERE service_id = $1
		ORDER BY package_id
	`

	rows, err := cr.db.Query(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find offerings for service %s: %w", serviceID, err)
	}
	defer rows.Close()

	var offerings []*entity.PricedOffering
	for rows.Next() {
		var offering entity.PricedOffering
		if err := rows.Scan(
			&offering.ServiceID,
			&offering.PackageID,
			&offering.ServiceName,
			&offering.PackageName,
			&offering.Description,
			&offering.UnitPrice,
			&offering.Features,
			&offering.Warranty,
			&offering.Version,
			&offering.CreatedAt,
			&offering.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan offering: %w", err)
		}
		offerings = append(offerings, &offering)
	}

	return offerings, rows.Err()
}

// Seed upserts the catalog. Offerings are versioned snapshots: reseeding
// with changed prices bumps the version instead of mutating checkout
// history.
func (cr *catalogRepository) Seed(ctx context.Context, services []*entity.CatalogService, offerings []*entity.PricedOffering) error {
	for _, svc := range services {
		query := `
			INSERT INTO catalog_services (id, name, description, category,
			                              starting_price, duration, rating,
			                              created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    description = EXCLUDED.description,
			    category = EXCLUDED.category,
			    starting_price = EXCLUDED.starting_price,
			    duration = EXCLUDED.duration,
			    rating = EXCLUDED.rating,
			    updated_at = NOW()
		`
		if _, err := cr.db.Exec(ctx, query,
			svc.ID, svc.Name, svc.Description, svc.Category,
			svc.StartingPrice, svc.Duration, svc.Rating,
		); err != nil {
			return fmt.Errorf("seed service %s: %w", svc.ID, err)
		}
	}

	for _, offering := range offerings {
		query := `
			INSERT INTO priced_offerings (service_id, package_id, service_name,
			                              package_name, description, unit_price,
			                              features, warranty, version,
			                              created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, NOW(), NOW())
			ON CONFLICT (service_id, package_id) DO UPDATE
			SET service_name = EXCLUDED.service_name,
			    package_name = EXCLUDED.package_name,
			    description = EXCLUDED.description,
			    unit_price = EXCLUDED.unit_price,
			    features = EXCLUDED.features,
			    warranty = EXCLUDED.warranty,
			    version = priced_offerings.version + 1,
			    updated_at = NOW()
			WHERE priced_offerings.unit_price <> EXCLUDED.unit_price
			   OR priced_offerings.package_name <> EXCLUDED.package_name
		`
		if _, err := cr.db.Exec(ctx, query,
			offering.ServiceID, offering.PackageID, offering.ServiceName,
			offering.PackageName, offering.Description, offering.UnitPrice,
			offering.Features, offering.Warranty,
		); err != nil {
			return fmt.Errorf("seed offering %s/%s: %w", offering.ServiceID, offering.PackageID, err)
		}
	}

	cr.log.Info("Catalog seeded",
		zap.Int("services", len(services)),
		zap.Int("offerings", len(offerings)),
	)

	return nil
}
