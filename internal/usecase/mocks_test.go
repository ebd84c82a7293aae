package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"servicehub/internal/data/entity"
	"servicehub/internal/data/repository"
	"servicehub/pkg/gateway"
	"servicehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory doubles for the repository interfaces. They reproduce the
// store's conditional-update semantics so the workflow tests exercise
// the same win/lose behavior as the real SQL.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return errors.New("duplicate email")
	}
	u := *user
	f.users[user.Email] = &u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *user
	f.users[user.Email] = &u
	return nil
}

type fakeCatalogRepo struct {
	services  []*entity.CatalogService
	offerings map[string]*entity.PricedOffering // serviceID/packageID
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	f := &fakeCatalogRepo{offerings: make(map[string]*entity.PricedOffering)}
	services, offerings := repository.DefaultCatalog()
	f.services = services
	for _, o := range offerings {
		f.offerings[o.ServiceID+"/"+o.PackageID] = o
	}
	return f
}

func (f *fakeCatalogRepo) FindServices(_ context.Context, category, search string) ([]*entity.CatalogService, error) {
	var out []*entity.CatalogService
	for _, s := range f.services {
		if category != "" && s.Category != category {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) FindServiceByID(_ context.Context, id string) (*entity.CatalogService, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) FindOffering(_ context.Context, serviceID, packageID string) (*entity.PricedOffering, error) {
	if o, ok := f.offerings[serviceID+"/"+packageID]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCatalogRepo) FindOfferingsByService(_ context.Context, serviceID string) ([]*entity.PricedOffering, error) {
	var out []*entity.PricedOffering
	for _, o := range f.offerings {
		if o.ServiceID == serviceID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) Seed(_ context.Context, services []*entity.CatalogService, offerings []*entity.PricedOffering) error {
	f.services = services
	for _, o := range offerings {
		f.offerings[o.ServiceID+"/"+o.PackageID] = o
	}
	return nil
}

type fakePaymentOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.PaymentOrder // by order_id
}

func newFakePaymentOrderRepo() *fakePaymentOrderRepo {
	return &fakePaymentOrderRepo{orders: make(map[string]*entity.PaymentOrder)}
}

func (f *fakePaymentOrderRepo) Create(_ context.Context, order *entity.PaymentOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[order.OrderID]; ok {
		return errors.New("duplicate order id")
	}
	cp := *order
	f.orders[order.OrderID] = &cp
	return nil
}

func (f *fakePaymentOrderRepo) FindByOrderID(_ context.Context, orderID string) (*entity.PaymentOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[orderID]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

// transition flips the order's status iff its current status is one of
// from, mirroring the conditional UPDATE's RowsAffected contract.
func (f *fakePaymentOrderRepo) transition(orderID string, to entity.PaymentOrderStatus, from ...entity.PaymentOrderStatus) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return false
	}
	for _, s := range from {
		if o.Status == s {
			o.Status = to
			return true
		}
	}
	return false
}

func (f *fakePaymentOrderRepo) MarkAttempted(_ context.Context, orderID string) (bool, error) {
	return f.transition(orderID, entity.PaymentOrderStatusAttempted, entity.PaymentOrderStatusCreated), nil
}

func (f *fakePaymentOrderRepo) MarkCancelled(_ context.Context, orderID string) (bool, error) {
	return f.transition(orderID, entity.PaymentOrderStatusCancelled,
		entity.PaymentOrderStatusCreated, entity.PaymentOrderStatusAttempted), nil
}

func (f *fakePaymentOrderRepo) MarkFailed(_ context.Context, orderID string) (bool, error) {
	return f.transition(orderID, entity.PaymentOrderStatusFailed,
		entity.PaymentOrderStatusCreated, entity.PaymentOrderStatusAttempted), nil
}

func (f *fakePaymentOrderRepo) ClaimPaid(_ context.Context, orderID, gatewayPaymentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.Status != entity.PaymentOrderStatusAttempted {
		return false, nil
	}
	o.Status = entity.PaymentOrderStatusPaid
	pid := gatewayPaymentID
	o.GatewayPaymentID = &pid
	return true, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*entity.Booking // by booking_id
	// duplicateNext forces the next N creates to fail with a
	// unique-violation, to exercise the ID retry loop.
	duplicateNext int
	// failNext forces the next N creates to fail with a generic
	// store error, to exercise recovery after a paid order's
	// booking write is lost.
	failNext int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext > 0 {
		f.failNext--
		return fmt.Errorf("create booking %s: connection reset", booking.BookingID)
	}
	if f.duplicateNext > 0 {
		f.duplicateNext--
		return fmt.Errorf("create booking %s: %w", booking.BookingID, repository.ErrDuplicateBookingID)
	}
	if _, ok := f.bookings[booking.BookingID]; ok {
		return fmt.Errorf("create booking %s: %w", booking.BookingID, repository.ErrDuplicateBookingID)
	}
	cp := *booking
	f.bookings[booking.BookingID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByBookingID(_ context.Context, bookingID string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[bookingID]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByPaymentOrderID(_ context.Context, paymentOrderID string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.PaymentOrderID == paymentOrderID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID string, status entity.BookingStatus) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID string, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("update booking %s status: not found", bookingID)
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, bookingID, date, timeWindow string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("reschedule booking %s: not found", bookingID)
	}
	b.ScheduledDate = date
	b.ScheduledTimeWindow = timeWindow
	b.Status = entity.BookingStatusRescheduled
	return nil
}

func (f *fakeBookingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeIntentRepo struct {
	mu      sync.Mutex
	intents map[string]*entity.OrderIntent // by session id
}

func newFakeIntentRepo() *fakeIntentRepo {
	return &fakeIntentRepo{intents: make(map[string]*entity.OrderIntent)}
}

func (f *fakeIntentRepo) Store(_ context.Context, sessionID string, intent *entity.OrderIntent, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *intent
	f.intents[sessionID] = &cp
	return nil
}

func (f *fakeIntentRepo) Consume(_ context.Context, sessionID string) (*entity.OrderIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	intent, ok := f.intents[sessionID]
	if !ok {
		return nil, nil
	}
	delete(f.intents, sessionID)
	return intent, nil
}

// fakeGateway signs orders the same way the real processor does, so a
// "successful payment" in tests is a genuinely verifiable signature.
type fakeGateway struct {
	mu        sync.Mutex
	keySecret string
	seq       int
	// fail makes CreateOrder error, simulating an unreachable processor.
	fail bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{keySecret: "test_secret"}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinorUnits int64, currency, receiptRef string) (*gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return nil, errors.New("connection refused")
	}
	g.seq++
	return &gateway.Order{
		ID:       fmt.Sprintf("order_test%04d", g.seq),
		Entity:   "order",
		Amount:   amountMinorUnits,
		Currency: currency,
		Receipt:  receiptRef,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(g.sign(orderID, paymentID)), []byte(signature))
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}

func (g *fakeGateway) sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type testEnv struct {
	repo     *repository.Repository
	orders   *fakePaymentOrderRepo
	bookings *fakeBookingRepo
	intents  *fakeIntentRepo
	users    *fakeUserRepo
	gateway  *fakeGateway
	service  *Service
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	orders := newFakePaymentOrderRepo()
	bookings := newFakeBookingRepo()
	intents := newFakeIntentRepo()
	gw := newFakeGateway()

	repo := &repository.Repository{
		User:         users,
		Catalog:      newFakeCatalogRepo(),
		PaymentOrder: orders,
		Booking:      bookings,
		Intent:       intents,
	}

	config := &utils.Config{
		JWT:     utils.JWTConfig{Secret: "test-jwt-secret", ExpiryDays: 7},
		Pricing: utils.PricingConfig{TaxRate: 0.18, Currency: "INR"},
	}

	return &testEnv{
		repo:     repo,
		orders:   orders,
		bookings: bookings,
		intents:  intents,
		users:    users,
		gateway:  gw,
		service:  NewService(repo, config, gw, zap.NewNop()),
	}
}

func testIdentity() *utils.Identity {
	return &utils.Identity{
		UserID:    uuid.New(),
		Name:      "Priya Sharma",
		Email:     "priya@example.com",
		Role:      "user",
		SessionID: uuid.New().String(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}
