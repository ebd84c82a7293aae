package entity

type BookingStatus string

const (
	BookingStatusConfirmed   BookingStatus = "confirmed"
	BookingStatusCompleted   BookingStatus = "completed"
	BookingStatusCancelled   BookingStatus = "cancelled"
	BookingStatusRescheduled BookingStatus = "rescheduled"
)

// Booking is the durable record created exactly once per paid payment
// order. Bookings are never deleted, only status-transitioned.
type Booking struct {
	Base
	BookingID            string        `db:"booking_id"`
	UserID               string        `db:"user_id"`
	ServiceID            string        `db:"service_id"`
	PackageID            string        `db:"package_id"`
	ServiceName          string        `db:"service_name"`
	PackageName          string        `db:"package_name"`
	ScheduledDate        string        `db:"scheduled_date"`
	ScheduledTimeWindow  string        `db:"scheduled_time_window"`
	ServiceAddress       string        `db:"service_address"`
	AmountPaidMinorUnits int64         `db:"amount_paid_minor_units"`
	PaymentOrderID       string        `db:"payment_order_id"`
	Status               BookingStatus `db:"status"`
}
