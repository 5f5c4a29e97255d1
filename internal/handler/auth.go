package handler

import (
	"encoding/json"
	"net/http"

	"shopcart-api/internal/middleware"
	"shopcart-api/internal/service"
	"shopcart-api/pkg/apierror"
	"shopcart-api/pkg/response"
)

// AuthHandler handles registration, login and password changes.
type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expires_in,omitempty"`
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if _, err := h.authService.Register(r.Context(), req.Username, req.Password); err != nil {
		response.Error(w, err)
		return
	}

	response.Message(w, http.StatusCreated, "Registration successful")
}

// Login handles POST /login. Credentials were already verified by the
// auth middleware; this mints a bearer session token so clients do not
// need to replay Basic credentials on every call.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	token, err := h.sessionService.Create(r.Context(), user)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to create session"))
		return
	}

	response.OK(w, LoginResponse{
		Message:   "Login successful!",
		Token:     token,
		ExpiresIn: int(h.sessionService.TTL().Seconds()),
	})
}

// ChangePassword handles POST /users/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if err := h.authService.ChangePassword(r.Context(), user.Username, req.OldPassword, req.NewPassword); err != nil {
		response.Error(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Password updated successfully")
}
