package repository

import (
	"servicehub/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Catalog      CatalogRepository
	PaymentOrder PaymentOrderRepository
	Booking      BookingRepository
	Intent       IntentRepository
}

func NewRepository(db database.PgxIface, rdb *redis.Client, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Catalog:      NewCatalogRepository(db, log),
		PaymentOrder: NewPaymentOrderRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Intent:       NewIntentRepository(rdb, log),
	}
}
