package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"footballiq/internal/service"
)

// AdUnlockHandler mints rewarded-ad unlocks for premium puzzles
type AdUnlockHandler struct {
	adUnlockService *service.AdUnlockService
}

// NewAdUnlockHandler creates a new ad unlock handler
func NewAdUnlockHandler(adUnlockService *service.AdUnlockService) *AdUnlockHandler {
	return &AdUnlockHandler{adUnlockService: adUnlockService}
}

type adUnlockRequest struct {
	PuzzleID string `json:"puzzleId"`
}

type adUnlockResponse struct {
	PuzzleID  string    `json:"puzzleId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Unlock handles POST /ad-unlocks
func (h *AdUnlockHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req adUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if req.PuzzleID == "" {
		respondWithError(w, http.StatusBadRequest, "puzzleId is required", "", nil)
		return
	}

	unlock, err := h.adUnlockService.Unlock(user, req.PuzzleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPuzzleNotFound):
			respondWithError(w, http.StatusNotFound, "Puzzle not found", "", nil)
		case errors.Is(err, service.ErrNotPremiumContent):
			respondWithError(w, http.StatusUnprocessableEntity, "Puzzle is not premium content", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to create ad unlock", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, adUnlockResponse{
		PuzzleID:  unlock.PuzzleID,
		ExpiresAt: unlock.ExpiresAt,
	})
}
