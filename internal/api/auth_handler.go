package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskman-api/internal/api/shared"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/phrazzld/taskman-api/internal/service/auth"
)

// AuthHandler handles registration and sign-in requests.
type AuthHandler struct {
	authService auth.Service
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /api/auth/signup. It responds 201 with an empty body.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.authService.Register(r.Context(), req.Username, req.Password); err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	logger.FromContext(r.Context()).Info("user signed up", slog.String("username", req.Username))
	w.WriteHeader(http.StatusCreated)
}

// Signin handles POST /api/auth/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	session, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SigninResponse{AccessToken: session.AccessToken})
}
