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

// PaymentOrderRepository guards every mutation of a payment order. The
// conditional Mark*/Claim* updates are the serialization point for the
// workflow's state machine: each one succeeds for exactly one caller and
// reports false to everyone who lost the race or arrived late.
type PaymentOrderRepository interface {
	Create(ctx context.Context, order *entity.PaymentOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.PaymentOrder, error)
	MarkAttempted(ctx context.Context, orderID string) (bool, error)
	MarkCancelled(ctx context.Context, orderID string) (bool, error)
	MarkFailed(ctx context.Context, orderID string) (bool, error)
	ClaimPaid(ctx context.Context, orderID, gatewayPaymentID string) (bool, error)
}

type paymentOrderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentOrderRepository(db database.PgxIface, log *zap.Logger) PaymentOrderRepository {
	return &paymentOrderRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment_order")),
	}
}

func (pr *paymentOrderRepository) Create(ctx context.Context, order *entity.PaymentOrder) error {
	query := `
		INSERT INTO payment_orders (id, order_id, user_id, service_id, package_id,
		                            amount_minor_units, currency, receipt_ref, status,
		                            scheduled_date, time_window, address, city,
		                            pincode, phone, instructions,
		                            created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
		        $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := pr.db.Exec(ctx, query,
		order.ID,
		order.OrderID,
		order.UserID,
		order.ServiceID,
		order.PackageID,
		order.AmountMinorUnits,
		order.Currency,
		order.ReceiptRef,
		order.Status,
		order.Delivery.ScheduledDate,
		order.Delivery.TimeWindow,
		order.Delivery.Address,
		order.Delivery.City,
		order.Delivery.Pincode,
		order.Delivery.Phone,
		order.Delivery.Instructions,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		pr.log.Error("Failed to create payment order",
			zap.Error(err),
			zap.String("order_id", order.OrderID),
		)
		return fmt.Errorf("create payment order %s: %w", order.OrderID, err)
	}

	return nil
}

func (pr *paymentOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.PaymentOrder, error) {
	query := `
		SELECT id, order_id, user_id, service_id, package_id,
		       amount_minor_units, currency, receipt_ref, status,
		       gateway_payment_id,
		       scheduled_date, time_window, address, city,
		       pincode, phone, instructions,
		       created_at, updated_at
		FROM payment_orders
		WHERE order_id = $1
	`

	var order entity.PaymentOrder
	err := pr.db.QueryRow(ctx, query, orderID).Scan(
		&order.ID,
		&order.OrderID,
		&order.UserID,
		&order.ServiceID,
		&order.PackageID,
		&order.AmountMinorUnits,
		&order.Currency,
		&order.ReceiptRef,
		&order.Status,
		&order.GatewayPaymentID,
		&order.Delivery.ScheduledDate,
		&order.Delivery.TimeWindow,
		&order.Delivery.Address,
		&order.Delivery.City,
		&order.Delivery.Pincode,
		&order.Delivery.Phone,
		&order.Delivery.Instructions,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payment order %s: %w", orderID, err)
	}

	return &order, nil
}

// MarkAttempted transitions created -> attempted when the checkout is
// presented to the user.
func (pr *paymentOrderRepository) MarkAttempted(ctx context.Context, orderID string) (bool, error) {
	query := `
		UPDATE payment_orders
		SET status = $2, updated_at = NOW()
		WHERE order_id = $1 AND status = $3
	`

	tag, err := pr.db.Exec(ctx, query, orderID,
		entity.PaymentOrderStatusAttempted, entity.PaymentOrderStatusCreated)
	if err != nil {
		return false, fmt.Errorf("mark payment order %s attempted: %w", orderID, err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkCancelled records a user dismissal. Only non-terminal orders can be
// cancelled; a cancelled order is never reused.
func (pr *paymentOrderRepository) MarkCancelled(ctx context.Context, orderID string) (bool, error) {
	query := `
		UPDATE payment_orders
		SET status = $2, updated_at = NOW()
		WHERE order_id = $1 AND status IN ($3, $4)
	`

	tag, err := pr.db.Exec(ctx, query, orderID,
		entity.PaymentOrderStatusCancelled,
		entity.PaymentOrderStatusCreated, entity.PaymentOrderStatusAttempted)
	if err != nil {
		return false, fmt.Errorf("cancel payment order %s: %w", orderID, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (pr *paymentOrderRepository) MarkFailed(ctx context.Context, orderID string) (bool, error) {
	query := `
		UPDATE payment_orders
		SET status = $2, updated_at = NOW()
		WHERE order_id = $1 AND status IN ($3, $4)
	`

	tag, err := pr.db.Exec(ctx, query, orderID,
		entity.PaymentOrderStatusFailed,
		entity.PaymentOrderStatusCreated, entity.PaymentOrderStatusAttempted)
	if err != nil {
		return false, fmt.Errorf("fail payment order %s: %w", orderID, err)
	}

	return tag.RowsAffected() == 1, nil
}

// ClaimPaid is the conditional write that makes the paid transition
// exclusive: the WHERE clause only matches status=attempted, so of any
// number of concurrent confirmations exactly one claims the order.
func (pr *paymentOrderRepository) ClaimPaid(ctx context.Context, orderID, gatewayPaymentID string) (bool, error) {
	query := `
		UPDATE payment_orders
		SET status = $2, gateway_payment_id = $3, updated_at = NOW()
		WHERE order_id = $1 AND status = $4
	`

	tag, err := pr.db.Exec(ctx, query, orderID,
		entity.PaymentOrderStatusPaid, gatewayPaymentID,
		entity.PaymentOrderStatusAttempted)
	if err != nil {
		return false, fmt.Errorf("claim payment order %s paid: %w", orderID, err)
	}

	return tag.RowsAffected() == 1, nil
}
