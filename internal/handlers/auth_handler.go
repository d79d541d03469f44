package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"footballiq/internal/service"
)

// AuthHandler serves device registration and token refresh
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerDeviceRequest struct {
	Timezone string `json:"timezone"`
}

type registerDeviceResponse struct {
	DeviceID string `json:"deviceId"`
	Secret   string `json:"secret"`
	Token    string `json:"token"`
}

// RegisterDevice handles POST /auth/device. The returned secret is shown
// exactly once; only its hash is stored.
func (h *AuthHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req registerDeviceRequest
	if r.Body != nil {
		// An empty body registers with the default timezone.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	user, token, secret, err := h.authService.RegisterDevice(req.Timezone)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to register device", err)
		return
	}

	respondJSON(w, http.StatusCreated, registerDeviceResponse{
		DeviceID: user.ID,
		Secret:   secret,
		Token:    token,
	})
}

type refreshRequest struct {
	DeviceID string `json:"deviceId"`
	Secret   string `json:"secret"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if req.DeviceID == "" || req.Secret == "" {
		respondWithError(w, http.StatusBadRequest, "deviceId and secret are required", "", nil)
		return
	}

	token, err := h.authService.Refresh(req.DeviceID, req.Secret)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to refresh token", err)
		return
	}

	respondJSON(w, http.StatusOK, refreshResponse{Token: token})
}
