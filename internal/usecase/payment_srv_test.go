package usecase

import (
	"context"
	"sync"
	"testing"

	"servicehub/internal/data/entity"
	"servicehub/internal/dto/request"
	"servicehub/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDelivery() request.DeliveryDetails {
	return request.DeliveryDetails{
		Date:       "2026-09-15",
		TimeWindow: "10:00 AM - 12:00 PM",
		Address:    "42 MG Road, Apartment 3B",
		City:       "Bengaluru",
		Pincode:    "560001",
		Phone:      "9876543210",
	}
}

func validOrderRequest() *request.CreatePaymentOrderRequest {
	return &request.CreatePaymentOrderRequest{
		ServiceID: "1",
		PackageID: "2",
		Delivery:  validDelivery(),
	}
}

func TestPaymentService_Initiate(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	order, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	// Home Cleaning Standard: 499 * 1.5 = 748.50, +18% = 883.23
	assert.Equal(t, int64(88323), order.AmountMinorUnits)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, entity.PaymentOrderStatusAttempted, order.Status)
	assert.NotEmpty(t, order.OrderID)
	assert.NotEmpty(t, order.ReceiptRef)
	assert.Equal(t, "rzp_test_key", order.KeyID)
	assert.Equal(t, identity.Name, order.Prefill.Name)
	assert.Equal(t, "9876543210", order.Prefill.Contact)

	stored, err := env.orders.FindByOrderID(context.Background(), order.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.PaymentOrderStatusAttempted, stored.Status)
	assert.Equal(t, identity.UserID.String(), stored.UserID)
}

func TestPaymentService_Initiate_MissingPhone(t *testing.T) {
	env := newTestEnv()

	req := validOrderRequest()
	req.Delivery.Phone = ""

	_, err := env.service.Payment.Initiate(context.Background(), testIdentity(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, env.orders.orders, 0, "no order may exist after rejected input")
}

func TestPaymentService_Initiate_UnknownOffering(t *testing.T) {
	env := newTestEnv()

	req := validOrderRequest()
	req.ServiceID = "99"

	_, err := env.service.Payment.Initiate(context.Background(), testIdentity(), req)
	assert.ErrorIs(t, err, ErrOfferingNotFound)
}

func TestPaymentService_Initiate_GatewayDown(t *testing.T) {
	env := newTestEnv()
	env.gateway.fail = true

	_, err := env.service.Payment.Initiate(context.Background(), testIdentity(), validOrderRequest())
	assert.ErrorIs(t, err, ErrProcessorUnavailable)
	assert.Len(t, env.orders.orders, 0, "nothing persisted when the processor is unreachable")
}

func TestPaymentService_Confirm_CreatesBooking(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	order, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	confirmation, err := env.service.Payment.Confirm(context.Background(), identity, &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc123",
		Signature: env.gateway.sign(order.OrderID, "pay_abc123"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, confirmation.Status)
	assert.Equal(t, int64(88323), confirmation.AmountPaidMinorUnits)
	assert.Equal(t, "Home Cleaning", confirmation.ServiceName)
	assert.Equal(t, "Standard", confirmation.PackageName)
	assert.Equal(t, "2026-09-15", confirmation.ScheduledDate)
	assert.Regexp(t, `^BK[A-Z2-9]{8}$`, confirmation.BookingID)

	stored, err := env.orders.FindByOrderID(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentOrderStatusPaid, stored.Status)
	require.NotNil(t, stored.GatewayPaymentID)
	assert.Equal(t, "pay_abc123", *stored.GatewayPaymentID)
}

func TestPaymentService_Confirm_Idempotent(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	order, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	req := &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_dup",
		Signature: env.gateway.sign(order.OrderID, "pay_dup"),
	}

	first, err := env.service.Payment.Confirm(context.Background(), identity, req)
	require.NoError(t, err)

	// Webhook and redirect both land: the second confirm returns the
	// same booking and creates nothing new.
	second, err := env.service.Payment.Confirm(context.Background(), identity, req)
	require.NoError(t, err)

	assert.Equal(t, first.BookingID, second.BookingID)
	assert.Equal(t, 1, env.bookings.count())
}

func TestPaymentService_Confirm_Concurrent(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	order, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	req := &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_race",
		Signature: env.gateway.sign(order.OrderID, "pay_race"),
	}

	const confirms = 10
	results := make([]*response.BookingConfirmationResponse, confirms)
	errs := make([]error, confirms)

	var wg sync.WaitGroup
	for i := 0; i < confirms; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.service.Payment.Confirm(context.Background(), identity, req)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, env.bookings.count(), "exactly one booking per paid order")
	for i := 0; i < confirms; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].BookingID, results[i].BookingID)
	}
}

func TestPaymentService_Confirm_BadSignature(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	order, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	_, err = env.service.Payment.Confirm(context.Background(), identity, &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_bad",
		Signature: "deadbeef",
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)

	stored, err := env.orders.FindByOrderID(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentOrderStatusFailed, stored.Status)
	assert.Equal(t, 0, env.bookings.count())

	// A failed order is terminal: even a now-valid signature is refused.
	_, err = env.service.Payment.Confirm(context.Background(), identity, &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_bad",
		Signature: env.gateway.sign(order.OrderID, "pay_bad"),
	})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestPaymentService_Confirm_UnknownOrder(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Payment.Confirm(context.Background(), testIdentity(), &request.VerifyPaymentRequest{
		OrderID:   "order_nope",
		PaymentID: "pay_x",
		Signature: "sig",
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_Confirm_ForeignOrder(t *testing.T) {
	env := newTestEnv()
	owner := testIdentity()

	order, err := env.service.Payment.Initiate(context.Background(), owner, validOrderRequest())
	require.NoError(t, err)

	other := testIdentity()
	_, err = env.service.Payment.Confirm(context.Background(), other, &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_x",
		Signature: env.gateway.sign(order.OrderID, "pay_x"),
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_Cancel(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	order, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	require.NoError(t, env.service.Payment.Cancel(context.Background(), identity, order.OrderID))

	stored, err := env.orders.FindByOrderID(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentOrderStatusCancelled, stored.Status)

	// Cancelling again conflicts; the order never leaves cancelled.
	err = env.service.Payment.Cancel(context.Background(), identity, order.OrderID)
	assert.ErrorIs(t, err, ErrStateConflict)

	// Confirming a cancelled order is refused.
	_, err = env.service.Payment.Confirm(context.Background(), identity, &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_late",
		Signature: env.gateway.sign(order.OrderID, "pay_late"),
	})
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Equal(t, 0, env.bookings.count())
}

func TestPaymentService_RetryAfterCancelGetsFreshOrder(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	first, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)
	require.NoError(t, env.service.Payment.Cancel(context.Background(), identity, first.OrderID))

	second, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.NotEqual(t, first.ReceiptRef, second.ReceiptRef)
	assert.Equal(t, first.AmountMinorUnits, second.AmountMinorUnits)
}

func TestPaymentService_Confirm_RecoversLostBooking(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	order, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	req := &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_heal",
		Signature: env.gateway.sign(order.OrderID, "pay_heal"),
	}

	// The booking write dies after the payment is claimed: the order
	// ends up durably paid with no booking behind it.
	env.bookings.failNext = 1
	_, err = env.service.Payment.Confirm(context.Background(), identity, req)
	require.Error(t, err)

	stored, err := env.orders.FindByOrderID(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentOrderStatusPaid, stored.Status)
	assert.Equal(t, 0, env.bookings.count())

	// The next confirmation heals the gap instead of reporting a
	// corrupted order forever.
	confirmation, err := env.service.Payment.Confirm(context.Background(), identity, req)
	require.NoError(t, err)
	assert.Regexp(t, `^BK[A-Z2-9]{8}$`, confirmation.BookingID)
	assert.Equal(t, 1, env.bookings.count())

	// And once healed, further retries return that same booking.
	again, err := env.service.Payment.Confirm(context.Background(), identity, req)
	require.NoError(t, err)
	assert.Equal(t, confirmation.BookingID, again.BookingID)
	assert.Equal(t, 1, env.bookings.count())
}

func TestPaymentService_OrderLocksReleased(t *testing.T) {
	env := newTestEnv()
	identity := testIdentity()

	svc := env.service.Payment.(*paymentService)

	order, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)

	req := &request.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_locks",
		Signature: env.gateway.sign(order.OrderID, "pay_locks"),
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = env.service.Payment.Confirm(context.Background(), identity, req)
		}()
	}
	wg.Wait()

	cancelled, err := env.service.Payment.Initiate(context.Background(), identity, validOrderRequest())
	require.NoError(t, err)
	require.NoError(t, env.service.Payment.Cancel(context.Background(), identity, cancelled.OrderID))

	// Per-order mutexes are scoped to in-flight calls; nothing may
	// accumulate once the calls return.
	svc.locksMu.Lock()
	remaining := len(svc.orderLocks)
	svc.locksMu.Unlock()
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 1, env.bookings.count())
}
