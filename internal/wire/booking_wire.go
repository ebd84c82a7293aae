package wire

import (
	"servicehub/internal/adaptor"
	"servicehub/pkg/middleware"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// GET /api/bookings - Booking history (user's own bookings)
		r.Get("/api/bookings", bookingHandler.ListBookings)

		// GET /api/bookings/{id} - Booking detail
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id}/cancel - Cancel a confirmed booking
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// PUT /api/bookings/{id}/reschedule - Move a booking to a new slot
		r.Put("/api/bookings/{id}/reschedule", bookingHandler.RescheduleBooking)
	})
}
