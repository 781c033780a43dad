package handlers

import (
	"net/http"

	"bracket-pool-go/logging"
	"bracket-pool-go/middleware"
	"bracket-pool-go/services"
)

// ScoreHandler handles scoring and standings HTTP requests
type ScoreHandler struct {
	scoringService *services.ScoringService
	leagueService  *services.LeagueService
	logger         *logging.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoringService *services.ScoringService, leagueService *services.LeagueService) *ScoreHandler {
	return &ScoreHandler{
		scoringService: scoringService,
		leagueService:  leagueService,
		logger:         logging.WithPrefix("ScoreHandler"),
	}
}

// MyScore returns the caller's score with the per-round breakdown
func (h *ScoreHandler) MyScore(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	result, err := h.scoringService.ScoreEntry(r.Context(), id, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Standings returns the ranked standings table for a league
func (h *ScoreHandler) Standings(w http.ResponseWriter, r *http.Request) {
	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	league, err := h.leagueService.GetLeague(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	standings, err := h.scoringService.LeagueStandings(r.Context(), league)
	if err != nil {
		h.logger.Errorf("Failed to compute standings for league %s: %v", id.Hex(), err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leagueId":  league.ID.Hex(),
		"status":    league.Status,
		"winners":   league.Winners,
		"standings": standings,
	})
}
