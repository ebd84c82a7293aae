package middleware

import (
	"net/http"

	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

// AuthCookieName is the httpOnly cookie carrying the signed session token.
const AuthCookieName = "auth_token"

// IntentCookieName is the httpOnly cookie carrying the opaque order
// intent reference. It is deliberately separate from the session cookie:
// the intent is captured before login and consumed after it.
const IntentCookieName = "intent_ref"

// Auth validates the signed session cookie and attaches the caller's
// identity to the request context. Signature and expiry failures are both
// rejected as unauthenticated; nothing here mutates the session.
func Auth(jwtConfig utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				utils.ResponseUnauthorized(w, "Not authenticated")
				return
			}

			identity, err := utils.VerifySessionToken(jwtConfig.Secret, cookie.Value)
			if err != nil {
				logger.Warn("Invalid or expired session token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires an admin or super_admin role. Must run after Auth.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if identity.Role != "admin" && identity.Role != "super_admin" {
				logger.Warn("Non-admin access attempt",
					zap.String("user_id", identity.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
