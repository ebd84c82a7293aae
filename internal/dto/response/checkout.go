package response

import (
	"servicehub/internal/data/entity"
)

// PaymentOrderResponse carries everything the payment UI needs to open
// the checkout: the gateway order, the public key and the prefill block.
type PaymentOrderResponse struct {
	OrderID          string                    `json:"order_id"`
	AmountMinorUnits int64                     `json:"amount"`
	Currency         string                    `json:"currency"`
	ReceiptRef       string                    `json:"receipt"`
	Status           entity.PaymentOrderStatus `json:"status"`
	KeyID            string                    `json:"key_id"`
	Prefill          PrefillResponse           `json:"prefill"`
}

type PrefillResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// BookingConfirmationResponse is the confirmation display payload.
type BookingConfirmationResponse struct {
	BookingID            string               `json:"booking_id"`
	Status               entity.BookingStatus `json:"status"`
	AmountPaidMinorUnits int64                `json:"amount_paid_minor_units"`
	ServiceName          string               `json:"service_name"`
	PackageName          string               `json:"package_name"`
	ScheduledDate        string               `json:"scheduled_date"`
	ScheduledTimeWindow  string               `json:"scheduled_time_window"`
}

type OrderIntentResponse struct {
	ServiceID string `json:"service_id"`
	PackageID string `json:"package_id"`
}

func BookingToConfirmationResponse(booking *entity.Booking) BookingConfirmationResponse {
	return BookingConfirmationResponse{
		BookingID:            booking.BookingID,
		Status:               booking.Status,
		AmountPaidMinorUnits: booking.AmountPaidMinorUnits,
		ServiceName:          booking.ServiceName,
		PackageName:          booking.PackageName,
		ScheduledDate:        booking.ScheduledDate,
		ScheduledTimeWindow:  booking.ScheduledTimeWindow,
	}
}
