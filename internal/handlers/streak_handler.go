package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"footballiq/internal/models"
	"footballiq/internal/service"
)

// StreakHandler serves the derived streak summary
type StreakHandler struct {
	streakService *service.StreakService
}

// NewStreakHandler creates a new streak handler
func NewStreakHandler(streakService *service.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

// Stats handles GET /stats/streak. A load failure answers zero-valued
// stats rather than an error so the client's header never breaks.
func (h *StreakHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	state, err := h.streakService.LoadStats(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to load streak stats")
		respondJSON(w, http.StatusOK, &models.StreakState{})
		return
	}

	respondJSON(w, http.StatusOK, state)
}
