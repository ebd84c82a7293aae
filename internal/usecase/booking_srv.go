package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/internal/data/entity"
	"servicehub/internal/data/repository"
	"servicehub/internal/dto/request"
	"servicehub/internal/dto/response"
	"servicehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bookingIDAttempts bounds the retry loop on booking ID collisions. With
// a 32-char alphabet over 8 positions a collision is already vanishingly
// rare, so hitting the bound means something else is wrong.
const bookingIDAttempts = 5

// BookingService manages the durable bookings that materialize from paid
// payment orders, and the user-facing lifecycle on top of them.
type BookingService interface {
	Materializer
	ListBookings(ctx context.Context, identity *utils.Identity, status string) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, identity *utils.Identity, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, identity *utils.Identity, bookingID string) (*response.BookingResponse, error)
	RescheduleBooking(ctx context.Context, identity *utils.Identity, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// Materialize creates the booking record for a paid order. Calling it
// with an order in any other state is a programming error upstream and
// is rejected rather than papered over.
func (s *bookingService) Materialize(ctx context.Context, order *entity.PaymentOrder) (*entity.Booking, error) {
	if order.Status != entity.PaymentOrderStatusPaid {
		return nil, fmt.Errorf("materialize booking for %s order %s: %w",
			order.Status, order.OrderID, ErrInvariantViolation)
	}

	serviceName := order.ServiceID
	packageName := order.PackageID
	offering, err := s.repo.Catalog.FindOffering(ctx, order.ServiceID, order.PackageID)
	if err != nil {
		return nil, fmt.Errorf("resolve offering for order %s: %w", order.OrderID, err)
	}
	if offering != nil {
		serviceName = offering.ServiceName
		packageName = offering.PackageName
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:               order.UserID,
		ServiceID:            order.ServiceID,
		PackageID:            order.PackageID,
		ServiceName:          serviceName,
		PackageName:          packageName,
		ScheduledDate:        order.Delivery.ScheduledDate,
		ScheduledTimeWindow:  order.Delivery.TimeWindow,
		ServiceAddress:       fmt.Sprintf("%s, %s %s", order.Delivery.Address, order.Delivery.City, order.Delivery.Pincode),
		AmountPaidMinorUnits: order.AmountMinorUnits,
		PaymentOrderID:       order.OrderID,
		Status:               entity.BookingStatusConfirmed,
	}

	for attempt := 1; ; attempt++ {
		booking.BookingID = utils.GenerateBookingID()

		err := s.repo.Booking.Create(ctx, booking)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrDuplicateBookingID) && attempt < bookingIDAttempts {
			s.log.Warn("Booking ID collision, retrying",
				zap.String("booking_id", booking.BookingID),
				zap.Int("attempt", attempt))
			continue
		}
		return nil, fmt.Errorf("create booking for order %s: %w", order.OrderID, err)
	}

	utils.BookingsCreatedTotal.Inc()
	s.log.Info("Booking materialized",
		zap.String("booking_id", booking.BookingID),
		zap.String("order_id", order.OrderID),
		zap.String("user_id", order.UserID),
		zap.Int64("amount_paid_minor_units", booking.AmountPaidMinorUnits),
	)

	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, identity *utils.Identity, status string) ([]response.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, identity.UserID.String(), entity.BookingStatus(status))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, response.BookingToResponse(b))
	}

	return out, nil
}

// findOwned loads a booking and enforces ownership. Admins may read any
// booking; everyone else only their own, and a foreign booking looks the
// same as a missing one.
func (s *bookingService) findOwned(ctx context.Context, identity *utils.Identity, bookingID string) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}

	if booking.UserID != identity.UserID.String() &&
		identity.Role != string(entity.RoleAdmin) &&
		identity.Role != string(entity.RoleSuperAdmin) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, identity *utils.Identity, bookingID string) (*response.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	booking, err := s.findOwned(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, identity *utils.Identity, bookingID string) (*response.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	booking, err := s.findOwned(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case entity.BookingStatusConfirmed, entity.BookingStatusRescheduled:
		// cancellable
	default:
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, booking.Status, ErrStateConflict)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, bookingID, entity.BookingStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	booking.Status = entity.BookingStatusCancelled

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", identity.UserID.String()))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) RescheduleBooking(ctx context.Context, identity *utils.Identity, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	booking, err := s.findOwned(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case entity.BookingStatusConfirmed, entity.BookingStatusRescheduled:
		// reschedulable
	default:
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, booking.Status, ErrStateConflict)
	}

	if err := s.repo.Booking.Reschedule(ctx, bookingID, req.Date, req.TimeWindow); err != nil {
		return nil, fmt.Errorf("reschedule booking: %w", err)
	}
	booking.ScheduledDate = req.Date
	booking.ScheduledTimeWindow = req.TimeWindow
	booking.Status = entity.BookingStatusRescheduled

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", bookingID),
		zap.String("new_date", req.Date),
		zap.String("new_time_window", req.TimeWindow))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}
