package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bracket-pool-go/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes a JSON error body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service sentinel errors onto HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrLeagueNotFound), errors.Is(err, services.ErrBracketNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotLeagueAdmin):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrLeagueEnded), errors.Is(err, services.ErrRoundLocked):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// leagueIDFromRequest parses the {id} route variable as an ObjectID.
func leagueIDFromRequest(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)["id"])
}
