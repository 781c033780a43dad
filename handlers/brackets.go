package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bracket-pool-go/bracket"
	"bracket-pool-go/logging"
	"bracket-pool-go/middleware"
	"bracket-pool-go/models"
	"bracket-pool-go/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BracketHandler handles pick selection and reset HTTP requests for both
// official results and member entries
type BracketHandler struct {
	bracketService *services.BracketService
	logger         *logging.Logger
}

// NewBracketHandler creates a new bracket handler
func NewBracketHandler(bracketService *services.BracketService) *BracketHandler {
	return &BracketHandler{
		bracketService: bracketService,
		logger:         logging.WithPrefix("BracketHandler"),
	}
}

type pickRequest struct {
	Round        models.Round `json:"round"`
	MatchupIndex int          `json:"matchupIndex"`
	Winner       string       `json:"winner"`
	WinnerSeed   *int         `json:"winnerSeed,omitempty"`
}

// GetOfficial returns the league's official results bracket
func (h *BracketHandler) GetOfficial(w http.ResponseWriter, r *http.Request) {
	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	official, err := h.bracketService.GetOfficialBracket(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, official)
}

// GetMemberEntry returns another member's entry bracket. Entries are
// visible to every authenticated member of the league.
func (h *BracketHandler) GetMemberEntry(w http.ResponseWriter, r *http.Request) {
	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	userID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	entry, err := h.bracketService.GetEntry(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// GetEntry returns the caller's entry bracket
func (h *BracketHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	entry, err := h.bracketService.GetEntry(r.Context(), id, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// PickOfficial records a real game result on the official bracket
func (h *BracketHandler) PickOfficial(w http.ResponseWriter, r *http.Request) {
	h.pick(w, r, h.bracketService.SelectOfficialWinner)
}

// PickEntry records the caller's pick on their entry bracket
func (h *BracketHandler) PickEntry(w http.ResponseWriter, r *http.Request) {
	h.pick(w, r, h.bracketService.SelectEntryWinner)
}

// ResetOfficial clears all recorded results
func (h *BracketHandler) ResetOfficial(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, h.bracketService.ResetOfficial)
}

// ResetEntry clears all of the caller's picks
func (h *BracketHandler) ResetEntry(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, h.bracketService.ResetEntry)
}

type pickFunc func(ctx context.Context, leagueID primitive.ObjectID, user *models.User, round models.Round, matchupIndex int, winner string, winnerSeed *int) (*models.BracketEntry, error)

func (h *BracketHandler) pick(w http.ResponseWriter, r *http.Request, selectFn pickFunc) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := selectFn(r.Context(), id, user, req.Round, req.MatchupIndex, req.Winner, req.WinnerSeed)
	if err != nil {
		if errors.Is(err, bracket.ErrInvalidSelection) ||
			errors.Is(err, bracket.ErrUnknownRound) ||
			errors.Is(err, bracket.ErrIndexOutOfRange) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

type resetFunc func(ctx context.Context, leagueID primitive.ObjectID, user *models.User) (*models.BracketEntry, error)

func (h *BracketHandler) reset(w http.ResponseWriter, r *http.Request, resetFn resetFunc) {
	user := middleware.GetUserFromContext(r)

	id, err := leagueIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	updated, err := resetFn(r.Context(), id, user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
