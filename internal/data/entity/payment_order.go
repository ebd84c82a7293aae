package entity

type PaymentOrderStatus string

const (
	// PaymentOrderStatusCreated: order created with the gateway, not yet
	// shown to the user.
	PaymentOrderStatusCreated PaymentOrderStatus = "created"
	// PaymentOrderStatusAttempted: checkout presented, awaiting the
	// confirmation callback.
	PaymentOrderStatusAttempted PaymentOrderStatus = "attempted"
	PaymentOrderStatusPaid      PaymentOrderStatus = "paid"
	PaymentOrderStatusFailed    PaymentOrderStatus = "failed"
	PaymentOrderStatusCancelled PaymentOrderStatus = "cancelled"
)

// Terminal reports whether no further transition may leave this status.
func (s PaymentOrderStatus) Terminal() bool {
	return s == PaymentOrderStatusPaid || s == PaymentOrderStatusFailed || s == PaymentOrderStatusCancelled
}

// DeliveryDetails is the scheduling and address information collected at
// checkout. It rides on the payment order so a verified confirmation has
// everything needed to materialize the booking.
type DeliveryDetails struct {
	ScheduledDate string `db:"scheduled_date"`
	TimeWindow    string `db:"time_window"`
	Address       string `db:"address"`
	City          string `db:"city"`
	Pincode       string `db:"pincode"`
	Phone         string `db:"phone"`
	Instructions  string `db:"instructions"`
}

// PaymentOrder tracks one attempt to pay for an offering. OrderID is the
// gateway-issued identifier, unique in the store. Status only moves
// through the transitions guarded by the payment workflow; a terminal
// order is never reused for a retry.
type PaymentOrder struct {
	Base
	OrderID          string             `db:"order_id"`
	UserID           string             `db:"user_id"`
	ServiceID        string             `db:"service_id"`
	PackageID        string             `db:"package_id"`
	AmountMinorUnits int64              `db:"amount_minor_units"`
	Currency         string             `db:"currency"`
	ReceiptRef       string             `db:"receipt_ref"`
	Status           PaymentOrderStatus `db:"status"`
	GatewayPaymentID *string            `db:"gateway_payment_id"`
	Delivery         DeliveryDetails
}
