package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"footballiq/internal/clock"
	"footballiq/internal/models"
	"footballiq/internal/repository"
)

// CatalogHandler ingests puzzle catalog entries pushed by the editorial
// backend
type CatalogHandler struct {
	puzzles *repository.PuzzleRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(puzzles *repository.PuzzleRepository) *CatalogHandler {
	return &CatalogHandler{puzzles: puzzles}
}

type catalogEntry struct {
	ID            string `json:"id"`
	GameMode      string `json:"gameMode"`
	PuzzleDate    string `json:"puzzleDate"`
	Difficulty    int    `json:"difficulty"`
	IsSpecial     bool   `json:"isSpecial"`
	EventTitle    string `json:"eventTitle"`
	EventSubtitle string `json:"eventSubtitle"`
}

type ingestRequest struct {
	Puzzles []catalogEntry `json:"puzzles"`
}

type ingestResponse struct {
	Ingested int `json:"ingested"`
}

// Ingest handles POST /internal/catalog. Entries are validated and
// upserted one by one; the first invalid entry rejects the whole batch
// before any write happens.
func (h *CatalogHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if len(req.Puzzles) == 0 {
		respondWithError(w, http.StatusBadRequest, "puzzles list is empty", "", nil)
		return
	}

	for i, entry := range req.Puzzles {
		if err := validateEntry(entry); err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("puzzle %d: %v", i, err), "", nil)
			return
		}
	}

	ingested := 0
	for _, entry := range req.Puzzles {
		p := &models.Puzzle{
			ID:            entry.ID,
			GameMode:      entry.GameMode,
			PuzzleDate:    entry.PuzzleDate,
			Difficulty:    entry.Difficulty,
			IsSpecial:     entry.IsSpecial,
			EventTitle:    entry.EventTitle,
			EventSubtitle: entry.EventSubtitle,
		}
		if err := h.puzzles.Upsert(p); err != nil {
			log.Error().Err(err).Str("puzzle_id", entry.ID).Msg("Failed to upsert catalog entry")
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "", nil)
			return
		}
		ingested++
	}

	respondJSON(w, http.StatusOK, ingestResponse{Ingested: ingested})
}

func validateEntry(entry catalogEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("missing id")
	}
	if !models.IsValidMode(entry.GameMode) {
		return fmt.Errorf("unknown game mode %q", entry.GameMode)
	}
	if _, err := time.Parse(clock.DateLayout, entry.PuzzleDate); err != nil {
		return fmt.Errorf("invalid puzzle date %q", entry.PuzzleDate)
	}
	return nil
}
