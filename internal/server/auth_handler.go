package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/maelle/smartcv/internal/config"
)

// LoginRequest is the body of POST /api/v1/login.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token for subsequent API calls.
type LoginResponse struct {
	Token string `json:"token"`
}

// AuthHandler gates the API behind the application passphrase. There are no
// user accounts; a correct passphrase buys a session token.
type AuthHandler struct {
	passwords    *config.PasswordConfig
	jwtService   *JWTService
	validator    *validator.Validate
	passwordHash string
}

// NewAuthHandler creates an AuthHandler checking against the given bcrypt hash.
func NewAuthHandler(passwords *config.PasswordConfig, jwtService *JWTService, passwordHash string) *AuthHandler {
	return &AuthHandler{
		passwords:    passwords,
		jwtService:   jwtService,
		validator:    validator.New(),
		passwordHash: passwordHash,
	}
}

// Login handles passphrase login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	if !h.passwords.VerifyPassword(req.Password, h.passwordHash) {
		err := &ErrInvalidCredentials{}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	token, err := h.jwtService.GenerateToken()
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LoginResponse{Token: token}); err != nil {
		// Response already sent.
		return
	}
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
