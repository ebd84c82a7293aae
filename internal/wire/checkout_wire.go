package wire

import (
	"servicehub/internal/adaptor"
	"servicehub/pkg/middleware"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/checkout/intent - Capture pending selection. Public on
	// purpose: this is the selection saved right before the login redirect.
	r.Post("/api/checkout/intent", checkoutHandler.CaptureIntent)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/checkout/intent/consume - Consume pending selection once
		r.Post("/api/checkout/intent/consume", checkoutHandler.ConsumeIntent)

		// POST /api/checkout/orders - Create payment order with the gateway
		r.Post("/api/checkout/orders", checkoutHandler.CreateOrder)

		// POST /api/checkout/verify - Verify payment, materialize booking
		r.Post("/api/checkout/verify", checkoutHandler.VerifyPayment)

		// POST /api/checkout/orders/{orderId}/cancel - User dismissed payment UI
		r.Post("/api/checkout/orders/{orderId}/cancel", checkoutHandler.CancelOrder)
	})
}
