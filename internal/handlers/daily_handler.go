package handlers

import (
	"net/http"

	"footballiq/internal/service"
)

// DailyHandler serves the home-feed daily card list
type DailyHandler struct {
	dailyService *service.DailyService
}

// NewDailyHandler creates a new daily handler
func NewDailyHandler(dailyService *service.DailyService) *DailyHandler {
	return &DailyHandler{dailyService: dailyService}
}

// Cards handles GET /daily/cards. The service degrades to the last-known
// snapshot on failure, so this endpoint always answers 200 for an
// authenticated user.
func (h *DailyHandler) Cards(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	respondJSON(w, http.StatusOK, h.dailyService.LoadDaily(user))
}
