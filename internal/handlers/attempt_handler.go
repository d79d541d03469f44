package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"footballiq/internal/service"
)

// AttemptHandler records puzzle attempts
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new attempt handler
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

type submitAttemptResponse struct {
	PuzzleID  string `json:"puzzleId"`
	Completed bool   `json:"completed"`
}

// Submit handles POST /attempts. The puzzle's mode and date come from
// the server-side catalog, never from the client payload.
func (h *AttemptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req service.SubmitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if req.PuzzleID == "" {
		respondWithError(w, http.StatusBadRequest, "puzzleId is required", "", nil)
		return
	}

	attempt, err := h.attemptService.Submit(user, req)
	if err != nil {
		if errors.Is(err, service.ErrPuzzleNotFound) {
			respondWithError(w, http.StatusNotFound, "Puzzle not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to record attempt", err)
		return
	}

	respondJSON(w, http.StatusOK, submitAttemptResponse{
		PuzzleID:  attempt.PuzzleID,
		Completed: attempt.Completed,
	})
}
