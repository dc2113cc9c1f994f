package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bookstocknook/storefront/internal/auth"
	"github.com/bookstocknook/storefront/internal/notify"
	"github.com/bookstocknook/storefront/pkg/validator"
)

// AuthHandler implements the dummy signup and login flows. Input is
// validated and a demo session token issued, but no credentials are ever
// stored or checked; the endpoints exist so the UI has a complete flow.
type AuthHandler struct {
	jwt      *auth.JWTManager
	notifier notify.Notifier
	delay    time.Duration
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(jwt *auth.JWTManager, notifier notify.Notifier, delay time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		jwt:      jwt,
		notifier: notifier,
		delay:    delay,
		logger:   logger,
	}
}

// SignupRequest is the JSON request body for signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the JSON request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionResponse carries the demo session token.
type SessionResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.issueSession(w, r, req.Email, req.Name, "Account created!", "Welcome to BookStock Nook, "+req.Name+".")
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.issueSession(w, r, req.Email, "", "Welcome back!", "You are now logged in.")
}

// Session handles GET /api/v1/auth/session. It echoes the identity held by
// the presented token so the UI can restore a session after a reload.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, err := SessionFromContext(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: SessionResponse{
		Email: claims.Email,
		Name:  claims.Name,
	}})
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, email, name, title, description string) {
	select {
	case <-time.After(h.delay):
	case <-r.Context().Done():
		return
	}

	token, err := h.jwt.GenerateToken(email, name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.notifier.Notify(notify.Notification{
		Kind:        notify.KindAuth,
		Title:       title,
		Description: description,
		Severity:    notify.SeverityDefault,
	})

	writeJSON(w, http.StatusOK, response{Data: SessionResponse{
		Token: token,
		Email: email,
		Name:  name,
	}})
}
