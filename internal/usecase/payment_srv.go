package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"servicehub/internal/data/entity"
	"servicehub/internal/data/repository"
	"servicehub/internal/dto/request"
	"servicehub/internal/dto/response"
	"servicehub/pkg/gateway"
	"servicehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Materializer turns a paid payment order into a durable booking. It is
// invoked exactly once per order by the confirm path.
type Materializer interface {
	Materialize(ctx context.Context, order *entity.PaymentOrder) (*entity.Booking, error)
}

// PaymentService orchestrates the checkout payment workflow: order
// creation with the gateway, presentation, confirmation verification and
// booking materialization. The one property everything here protects is
// that exactly one booking is created per payment order, no matter how
// many confirmations arrive.
type PaymentService interface {
	Initiate(ctx context.Context, identity *utils.Identity, req *request.CreatePaymentOrderRequest) (*response.PaymentOrderResponse, error)
	Cancel(ctx context.Context, identity *utils.Identity, orderID string) error
	Confirm(ctx context.Context, identity *utils.Identity, req *request.VerifyPaymentRequest) (*response.BookingConfirmationResponse, error)
}

type paymentService struct {
	repo         *repository.Repository
	gateway      gateway.PaymentGateway
	pricing      *PricingEngine
	materializer Materializer
	log          *zap.Logger

	// orderLocks serializes concurrent confirms for the same order id
	// within this process. The conditional ClaimPaid write is the
	// cross-process guard; the mutex keeps the local double-submit case
	// from even racing to the store. Entries are reference-counted and
	// removed when the last holder releases, so the map stays bounded by
	// in-flight confirmations rather than the order history.
	locksMu    sync.Mutex
	orderLocks map[string]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

func NewPaymentService(
	repo *repository.Repository,
	gw gateway.PaymentGateway,
	pricing *PricingEngine,
	materializer Materializer,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:         repo,
		gateway:      gw,
		pricing:      pricing,
		materializer: materializer,
		log:          log.With(zap.String("service", "payment")),
		orderLocks:   make(map[string]*orderLock),
	}
}

func (s *paymentService) lockOrder(orderID string) func() {
	s.locksMu.Lock()
	l := s.orderLocks[orderID]
	if l == nil {
		l = &orderLock{}
		s.orderLocks[orderID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.orderLocks, orderID)
		}
		s.locksMu.Unlock()
	}
}

// Initiate prices the offering, creates the order with the gateway and
// persists it. A gateway failure here leaves nothing behind: the caller
// retries by initiating again, which always produces a fresh order.
func (s *paymentService) Initiate(ctx context.Context, identity *utils.Identity, req *request.CreatePaymentOrderRequest) (*response.PaymentOrderResponse, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	// 1. Validate delivery details
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Initiate validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	// 2. Resolve the priced offering snapshot
	offering, err := s.repo.Catalog.FindOffering(ctx, req.ServiceID, req.PackageID)
	if err != nil {
		s.log.Error("Failed to resolve offering", zap.Error(err),
			zap.String("service_id", req.ServiceID),
			zap.String("package_id", req.PackageID))
		return nil, fmt.Errorf("resolve offering: %w", err)
	}
	if offering == nil {
		return nil, fmt.Errorf("offering %s/%s: %w", req.ServiceID, req.PackageID, ErrOfferingNotFound)
	}

	// 3. Price and convert to minor units
	quote := s.pricing.Price(offering)
	receiptRef := utils.GenerateReceiptRef()

	// 4. Create the order with the gateway (bounded, cancellable)
	gwOrder, err := s.gateway.CreateOrder(ctx, quote.AmountMinorUnits, quote.Currency, receiptRef)
	if err != nil {
		s.log.Warn("Gateway order creation failed", zap.Error(err),
			zap.Int64("amount_minor_units", quote.AmountMinorUnits))
		utils.PaymentOrdersFailedTotal.WithLabelValues("processor_unavailable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}

	// 5. Persist
	now := time.Now()
	order := &entity.PaymentOrder{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:          gwOrder.ID,
		UserID:           identity.UserID.String(),
		ServiceID:        req.ServiceID,
		PackageID:        req.PackageID,
		AmountMinorUnits: quote.AmountMinorUnits,
		Currency:         quote.Currency,
		ReceiptRef:       receiptRef,
		Status:           entity.PaymentOrderStatusCreated,
		Delivery: entity.DeliveryDetails{
			ScheduledDate: req.Delivery.Date,
			TimeWindow:    req.Delivery.TimeWindow,
			Address:       req.Delivery.Address,
			City:          req.Delivery.City,
			Pincode:       req.Delivery.Pincode,
			Phone:         req.Delivery.Phone,
			Instructions:  req.Delivery.Instructions,
		},
	}

	if err := s.repo.PaymentOrder.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist payment order: %w", err)
	}

	utils.PaymentOrdersCreatedTotal.Inc()

	// 6. The response hands the order to the payment UI, so the order
	// is now awaiting confirmation.
	if _, err := s.repo.PaymentOrder.MarkAttempted(ctx, order.OrderID); err != nil {
		s.log.Error("Failed to mark order attempted", zap.Error(err),
			zap.String("order_id", order.OrderID))
		return nil, fmt.Errorf("mark order attempted: %w", err)
	}
	order.Status = entity.PaymentOrderStatusAttempted

	s.log.Info("Payment order initiated",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", identity.UserID.String()),
		zap.String("service_id", req.ServiceID),
		zap.String("package_id", req.PackageID),
		zap.Int64("amount_minor_units", quote.AmountMinorUnits),
	)

	return &response.PaymentOrderResponse{
		OrderID:          order.OrderID,
		AmountMinorUnits: order.AmountMinorUnits,
		Currency:         order.Currency,
		ReceiptRef:       order.ReceiptRef,
		Status:           order.Status,
		KeyID:            s.gateway.KeyID(),
		Prefill: response.PrefillResponse{
			Name:    identity.Name,
			Email:   identity.Email,
			Contact: req.Delivery.Phone,
		},
	}, nil
}

// Cancel records the user dismissing the payment UI. The order ends in
// cancelled, not failed, and the user can initiate again for a fresh
// order; the cancelled one is never reused.
func (s *paymentService) Cancel(ctx context.Context, identity *utils.Identity, orderID string) error {
	if identity == nil {
		return ErrUnauthenticated
	}

	unlock := s.lockOrder(orderID)
	defer unlock()

	order, err := s.repo.PaymentOrder.FindByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("find payment order: %w", err)
	}
	if order == nil || order.UserID != identity.UserID.String() {
		return fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
	}

	cancelled, err := s.repo.PaymentOrder.MarkCancelled(ctx, orderID)
	if err != nil {
		return fmt.Errorf("cancel payment order: %w", err)
	}
	if !cancelled {
		return fmt.Errorf("order %s is %s: %w", orderID, order.Status, ErrStateConflict)
	}

	utils.PaymentOrdersCancelledTotal.Inc()
	s.log.Info("Payment order cancelled",
		zap.String("order_id", orderID),
		zap.String("user_id", identity.UserID.String()))

	return nil
}

// Confirm verifies a confirmation payload and materializes the booking.
// Idempotent per order: a repeat confirm for an already-paid order
// returns the existing booking and creates nothing.
func (s *paymentService) Confirm(ctx context.Context, identity *utils.Identity, req *request.VerifyPaymentRequest) (*response.BookingConfirmationResponse, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	unlock := s.lockOrder(req.OrderID)
	defer unlock()

	order, err := s.repo.PaymentOrder.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("find payment order: %w", err)
	}
	// Not (yet) visible: the client may retry once the order is readable.
	if order == nil || order.UserID != identity.UserID.String() {
		return nil, fmt.Errorf("order %s: %w", req.OrderID, ErrOrderNotFound)
	}

	switch order.Status {
	case entity.PaymentOrderStatusPaid:
		// Duplicate submit / webhook-plus-redirect race: return the
		// booking the first confirmation created.
		return s.existingConfirmation(ctx, order)

	case entity.PaymentOrderStatusAttempted:
		// fall through to verification

	default:
		return nil, fmt.Errorf("order %s is %s: %w", req.OrderID, order.Status, ErrStateConflict)
	}

	// Verify the processor signature. A failure is terminal for this
	// order; the same payload is never re-verified.
	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		if _, err := s.repo.PaymentOrder.MarkFailed(ctx, req.OrderID); err != nil {
			s.log.Error("Failed to mark order failed after bad signature",
				zap.Error(err), zap.String("order_id", req.OrderID))
		}
		utils.PaymentOrdersFailedTotal.WithLabelValues("verification_failed").Inc()
		s.log.Warn("Payment verification failed",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID))
		return nil, fmt.Errorf("order %s: %w", req.OrderID, ErrVerificationFailed)
	}

	// Claim the paid transition. The conditional write matches only
	// status=attempted, so exactly one verified confirmation wins.
	claimed, err := s.repo.PaymentOrder.ClaimPaid(ctx, req.OrderID, req.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("claim paid: %w", err)
	}
	if !claimed {
		// Another confirmation got there first.
		order, err = s.repo.PaymentOrder.FindByOrderID(ctx, req.OrderID)
		if err != nil {
			return nil, fmt.Errorf("reload payment order: %w", err)
		}
		if order != nil && order.Status == entity.PaymentOrderStatusPaid {
			return s.existingConfirmation(ctx, order)
		}
		return nil, fmt.Errorf("order %s: %w", req.OrderID, ErrStateConflict)
	}

	utils.PaymentsConfirmedTotal.Inc()

	order.Status = entity.PaymentOrderStatusPaid
	order.GatewayPaymentID = &req.PaymentID

	booking, err := s.materializer.Materialize(ctx, order)
	if err != nil {
		// The order is paid but the booking record failed; surface hard
		// so it is never silently lost.
		s.log.Error("Booking materialization failed for paid order",
			zap.Error(err), zap.String("order_id", req.OrderID))
		return nil, fmt.Errorf("materialize booking for order %s: %w", req.OrderID, err)
	}

	s.log.Info("Payment confirmed",
		zap.String("order_id", req.OrderID),
		zap.String("payment_id", req.PaymentID),
		zap.String("booking_id", booking.BookingID),
		zap.String("user_id", identity.UserID.String()),
	)

	resp := response.BookingToConfirmationResponse(booking)
	return &resp, nil
}

func (s *paymentService) existingConfirmation(ctx context.Context, order *entity.PaymentOrder) (*response.BookingConfirmationResponse, error) {
	booking, err := s.repo.Booking.FindByPaymentOrderID(ctx, order.OrderID)
	if err != nil {
		return nil, fmt.Errorf("find booking for order %s: %w", order.OrderID, err)
	}
	if booking == nil {
		// The claim succeeded but the booking write behind it did not
		// (e.g. a transient store error after ClaimPaid). The order is
		// durably paid, so retrying the materialization here is safe and
		// lets the next confirmation heal the gap.
		s.log.Warn("Paid order has no booking, retrying materialization",
			zap.String("order_id", order.OrderID))

		booking, err = s.materializer.Materialize(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("materialize booking for paid order %s: %w", order.OrderID, err)
		}
	} else {
		s.log.Info("Duplicate confirmation returned existing booking",
			zap.String("order_id", order.OrderID),
			zap.String("booking_id", booking.BookingID))
	}

	resp := response.BookingToConfirmationResponse(booking)
	return &resp, nil
}
