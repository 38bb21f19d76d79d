package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"
)

// LoginRequest is the request body for POST /api/admin/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Username) == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SuccessResponse is the body of login and logout responses.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MessageResponse is the body of a rejected login.
type MessageResponse struct {
	Message string `json:"message"`
}

type AuthController struct {
	Logger       *slog.Logger
	Service      domain.AuthService
	SecureCookie bool
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, secureCookie bool) *AuthController {
	return &AuthController{
		Logger:       logger,
		Service:      svc,
		SecureCookie: secureCookie,
	}
}

// Login godoc
// @Summary Admin login
// @Description Checks the shared admin credential and sets the admin_token session cookie (7 days).
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Admin credentials"
// @Success 200 {object} controllers.SuccessResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} controllers.MessageResponse "Invalid credentials"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /api/admin/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSON(w, http.StatusUnauthorized, MessageResponse{Message: "Invalid credentials"})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "login failed")
		return
	}

	middleware.SetSessionCookie(w, token, c.SecureCookie)
	h.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Logout godoc
// @Summary Admin logout
// @Description Clears the admin_token session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} controllers.SuccessResponse
// @Router /api/admin/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, c.SecureCookie)
	h.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
