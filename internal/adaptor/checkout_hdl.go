package adaptor

import (
	"encoding/json"
	"net/http"

	"servicehub/internal/dto/request"
	"servicehub/internal/usecase"
	"servicehub/pkg/middleware"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutHandler covers the checkout flow: order intent hand-off,
// payment order creation, confirmation and dismissal.
type CheckoutHandler struct {
	intents  usecase.IntentService
	payments usecase.PaymentService
	config   *utils.Config
	log      *zap.Logger
}

func NewCheckoutHandler(intents usecase.IntentService, payments usecase.PaymentService, config *utils.Config, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		intents:  intents,
		payments: payments,
		config:   config,
		log:      log,
	}
}

// intentRef returns the browser's intent reference, minting a fresh one
// when none is held yet. The reference lives in its own cookie rather
// than the session so the intent survives the login redirect that
// interrupts checkout.
func (h *CheckoutHandler) intentRef(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(middleware.IntentCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	ref := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.IntentCookieName,
		Value:    ref,
		Path:     "/",
		MaxAge:   int(usecase.IntentTTL.Seconds()),
		HttpOnly: true,
		Secure:   !h.config.App.Debug,
		SameSite: http.SameSiteLaxMode,
	})
	return ref
}

func (h *CheckoutHandler) clearIntentCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.IntentCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.config.App.Debug,
		SameSite: http.SameSiteLaxMode,
	})
}

// CaptureIntent handles POST /api/checkout/intent. Deliberately public:
// the selection is captured right before the user is sent to log in.
func (h *CheckoutHandler) CaptureIntent(w http.ResponseWriter, r *http.Request) {
	var req request.CaptureIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ref := h.intentRef(w, r)
	if err := h.intents.Capture(r.Context(), ref, &req); err != nil {
		respondServiceError(w, h.log, err, "capture intent")
		return
	}

	utils.ResponseCreated(w, "Order intent captured", nil)
}

// ConsumeIntent handles POST /api/checkout/intent/consume. Responds 200
// with data=null when no intent is pending; consuming is not an error.
func (h *CheckoutHandler) ConsumeIntent(w http.ResponseWriter, r *http.Request) {
	var ref string
	if cookie, err := r.Cookie(middleware.IntentCookieName); err == nil {
		ref = cookie.Value
	}

	intent, err := h.intents.ConsumeIfPresent(r.Context(), ref)
	if err != nil {
		respondServiceError(w, h.log, err, "consume intent")
		return
	}

	h.clearIntentCookie(w)

	if intent == nil {
		utils.ResponseSuccess(w, "No pending order intent", nil)
		return
	}

	utils.ResponseSuccess(w, "Order intent consumed", intent)
}

// CreateOrder handles POST /api/checkout/orders
func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	var req request.CreatePaymentOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.payments.Initiate(r.Context(), identity, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create payment order")
		return
	}

	utils.ResponseCreated(w, "Payment order created", order)
}

// VerifyPayment handles POST /api/checkout/verify
func (h *CheckoutHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	confirmation, err := h.payments.Confirm(r.Context(), identity, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, "Payment verified, booking confirmed", confirmation)
}

// CancelOrder handles POST /api/checkout/orders/{orderId}/cancel
func (h *CheckoutHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())
	orderID := chi.URLParam(r, "orderId")

	if err := h.payments.Cancel(r.Context(), identity, orderID); err != nil {
		respondServiceError(w, h.log, err, "cancel payment order")
		return
	}

	utils.ResponseSuccess(w, "Payment order cancelled", nil)
}
