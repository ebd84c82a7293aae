package response

import (
	"time"

	"servicehub/internal/data/entity"
)

type BookingResponse struct {
	BookingID            string               `json:"booking_id"`
	ServiceID            string               `json:"service_id"`
	PackageID            string               `json:"package_id"`
	ServiceName          string               `json:"service_name"`
	PackageName          string               `json:"package_name"`
	ScheduledDate        string               `json:"scheduled_date"`
	ScheduledTimeWindow  string               `json:"scheduled_time_window"`
	ServiceAddress       string               `json:"service_address"`
	AmountPaidMinorUnits int64                `json:"amount_paid_minor_units"`
	PaymentOrderID       string               `json:"payment_order_id"`
	Status               entity.BookingStatus `json:"status"`
	CreatedAt            time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		BookingID:            booking.BookingID,
		ServiceID:            booking.ServiceID,
		PackageID:            booking.PackageID,
		ServiceName:          booking.ServiceName,
		PackageName:          booking.PackageName,
		ScheduledDate:        booking.ScheduledDate,
		ScheduledTimeWindow:  booking.ScheduledTimeWindow,
		ServiceAddress:       booking.ServiceAddress,
		AmountPaidMinorUnits: booking.AmountPaidMinorUnits,
		PaymentOrderID:       booking.PaymentOrderID,
		Status:               booking.Status,
		CreatedAt:            booking.CreatedAt,
	}
}
