package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// SessionCookie is the cookie carrying the admin session token.
const SessionCookie = "admin_token"

// LoginPath is where unauthenticated admin page requests are sent.
const LoginPath = "/admin/login"

type contextKey string

const adminClaimsKey contextKey = "adminClaims"

// SetAdminClaims returns a context carrying verified admin claims.
func SetAdminClaims(ctx context.Context, claims *domain.AdminClaims) context.Context {
	return context.WithValue(ctx, adminClaimsKey, claims)
}

// AdminClaimsFromContext returns the admin claims stored by RequireAdmin, if present.
func AdminClaimsFromContext(ctx context.Context) (*domain.AdminClaims, bool) {
	c, ok := ctx.Value(adminClaimsKey).(*domain.AdminClaims)
	return c, ok && c != nil
}

// SetSessionCookie stores token in the admin session cookie.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(domain.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the admin session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// verifySession returns the claims of the request's session cookie, or nil.
func verifySession(r *http.Request, verifier domain.TokenVerifier) *domain.AdminClaims {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	claims, err := verifier.Verify(c.Value)
	if err != nil {
		return nil
	}
	return claims
}

// IsAdmin reports whether the request carries a valid admin session.
func IsAdmin(r *http.Request, verifier domain.TokenVerifier) bool {
	return verifySession(r, verifier) != nil
}

// gated reports whether path is an admin page needing a session.
func gated(path string) bool {
	if path == LoginPath || path == "/api/admin/login" {
		return false
	}
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}

// AdminGate redirects requests for /admin and /admin/* pages to the login
// page unless they carry a valid session cookie. Other paths pass through
// untouched.
func AdminGate(verifier domain.TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gated(r.URL.Path) {
			claims := verifySession(r, verifier)
			if claims == nil {
				http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
				return
			}
			r = r.WithContext(SetAdminClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns a wrapper that validates the session cookie for API
// routes. If it is missing or invalid, it responds with 401 and does not call next.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := verifySession(r, verifier)
			if claims == nil {
				logger.DebugContext(r.Context(), "admin session rejected", "path", r.URL.Path)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "admin session required")
				return
			}
			next(w, r.WithContext(SetAdminClaims(r.Context(), claims)))
		}
	}
}
