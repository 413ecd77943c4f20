package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yatraplan/trip-planner-api/internal/app/planner"
	"github.com/yatraplan/trip-planner-api/internal/domain"
)

// Server is the HTTP adapter over the planner service.
type Server struct {
	Planner *planner.Service
}

func NewServer(plannerSvc *planner.Service) *Server {
	return &Server{Planner: plannerSvc}
}

type createItineraryResponse struct {
	Trip domain.SavedTrip `json:"trip"`
}

type listTripsResponse struct {
	Trips []domain.SavedTrip `json:"trips"`
}

func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var prefs domain.TripPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body", nil)
		return
	}
	clampPreferences(&prefs)

	trip, err := s.Planner.GenerateItinerary(r.Context(), prefs)
	if err != nil {
		if ae := (*planner.Error)(nil); errors.As(err, &ae) {
			writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}

	writeJSON(w, http.StatusCreated, createItineraryResponse{Trip: trip})
}

func (s *Server) ListSavedTrips(w http.ResponseWriter, r *http.Request) {
	trips := s.Planner.ListSavedTrips(r.Context())
	writeJSON(w, http.StatusOK, listTripsResponse{Trips: trips})
}

func (s *Server) DeleteSavedTrip(w http.ResponseWriter, r *http.Request) {
	id := domain.TripID(chi.URLParam(r, "tripID"))
	if !s.Planner.DeleteSavedTrip(r.Context(), id) {
		writeError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", "failed to delete saved trip", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clampPreferences enforces the form's slider bounds at the edge so the core
// never re-validates numeric fields.
func clampPreferences(p *domain.TripPreferences) {
	p.Duration = clampInt(p.Duration, 1, 14)
	p.Budget = clampInt(p.Budget, 1000, 30000)
	p.GroupSize = clampInt(p.GroupSize, 1, 6)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
