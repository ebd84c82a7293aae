package wire

import (
	"servicehub/internal/adaptor"
	"servicehub/pkg/middleware"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/auth/register - Create account, returns session cookie
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Authenticate, returns session cookie
	r.Post("/api/auth/login", authHandler.Login)

	// POST /api/auth/logout - Clear session cookie
	r.Post("/api/auth/logout", authHandler.Logout)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// GET /api/auth/me - Current authenticated user
		r.Get("/api/auth/me", authHandler.Me)
	})
}
