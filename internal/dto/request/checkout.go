package request

// DeliveryDetails is the scheduling form submitted at checkout. Pincode
// and phone are fixed-length numeric per the Indian address/mobile
// formats the front end collects.
type DeliveryDetails struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeWindow   string `json:"time" validate:"required"`
	Address      string `json:"address" validate:"required"`
	City         string `json:"city" validate:"required"`
	Pincode      string `json:"pincode" validate:"required,len=6,numeric"`
	Phone        string `json:"phone" validate:"required,len=10,numeric"`
	Instructions string `json:"instructions,omitempty"`
}

type CreatePaymentOrderRequest struct {
	ServiceID string          `json:"service_id" validate:"required"`
	PackageID string          `json:"package_id" validate:"required"`
	Delivery  DeliveryDetails `json:"delivery" validate:"required"`
}

// VerifyPaymentRequest is the confirmation payload delivered by the
// payment UI after a successful charge.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

type CaptureIntentRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
	PackageID string `json:"package_id" validate:"required"`
}
