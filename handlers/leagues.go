package handlers

import (
	"encoding/json"
	"net/http"

	"bracket-pool-go/logging"
	"bracket-pool-go/middleware"
	"bracket-pool-go/models"
	"bracket-pool-go/services"
)

// LeagueHandler handles league lifecycle HTTP requests
type LeagueHandler struct {
	leagueService *services.LeagueService
	emailService  *services.EmailService
	currentSeason int
	baseURL       string
	logger        *logging.Logger
}

// NewLeagueHandler creates a new league handler
func NewLeagueHandler(leagueService *services.LeagueService, emailService *services.EmailService, currentSeason int, baseURL string) *LeagueHandler {
	return &LeagueHandler{
		leagueService: leagueService,
		emailService:  emailService,
		currentSeason: currentSeason,
		baseURL:       baseURL,
		logger:        logging.WithPrefix("LeagueHandler"),
	}
}

type createLeagueRequest struct {
	Name   string                `json:"name"`
	Season int                   `json:"season"`
	Teams  models.TeamAssignment `json:"teams"`
}

// Create creates a league administered by the caller
func (h *LeagueHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	var req createLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Season == 0 {
		req.Season = h.currentSeason
	}

	league, err := h.leagueService.CreateLeague(r.Context(), user, req.Name, req.Season, req.Teams)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, league)
}

// Get returns a league by ID
func (h *LeagueHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, league)
}

type joinLeagueRequest struct {
	InviteCode string `json:"inviteCode"`
}

// Join adds the caller to a league by invite code
func (h *LeagueHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	var req joinLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.InviteCode == "" {
		respondError(w, http.StatusBadRequest, "invite code is required")
		return
	}

	league, entry, err := h.leagueService.JoinLeague(r.Context(), user, req.InviteCode)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"league": league,
		"entry":  entry,
	})
}

type updateTeamsRequest struct {
	Teams models.TeamAssignment `json:"teams"`
}

// UpdateTeams replaces the team assignment and rebuilds all brackets
func (h *LeagueHandler) UpdateTeams(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var req updateTeamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	league, err := h.leagueService.UpdateTeams(r.Context(), id, user, req.Teams)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, league)
}

// UpdateScoring replaces the scoring configuration
func (h *LeagueHandler) UpdateScoring(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var cfg models.ScoringConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	league, err := h.leagueService.UpdateScoring(r.Context(), id, user, cfg)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, league)
}

// UpdateFinalFour replaces the region-to-semifinal mapping
func (h *LeagueHandler) UpdateFinalFour(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var cfg models.FinalFourConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	league, err := h.leagueService.UpdateFinalFour(r.Context(), id, user, cfg)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, league)
}

type roundLockRequest struct {
	Round  models.Round `json:"round"`
	Locked bool         `json:"locked"`
}

// SetRoundLock locks or unlocks a round for member picks
func (h *LeagueHandler) SetRoundLock(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var req roundLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	league, err := h.leagueService.SetRoundLock(r.Context(), id, user, req.Round, req.Locked)
	if err != nil {
		if err == services.ErrNotLeagueAdmin || err == services.ErrLeagueNotFound {
			respondServiceError(w, err)
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, league)
}

// End freezes the league and returns final standings with recorded winners
func (h *LeagueHandler) End(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	standings, err := h.leagueService.EndLeague(r.Context(), id, user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"standings": standings})
}

type inviteRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Invite emails the league's invite code to a prospective member
func (h *LeagueHandler) Invite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	league, err := h.leagueService.GetLeague(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !league.IsAdmin(user.ID) {
		respondError(w, http.StatusForbidden, services.ErrNotLeagueAdmin.Error())
		return
	}

	if err := h.emailService.SendLeagueInviteEmail(req.Email, req.Name, league.Name, league.InviteCode, h.baseURL); err != nil {
		h.logger.Errorf("Failed to send invite for league %s to %s: %v", id.Hex(), req.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to send invite")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "invite sent"})
}
