package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"league-tracker/internal/region"
	"league-tracker/internal/repository"
	"league-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// TrackerServer exposes the profile and match services over JSON HTTP.
type TrackerServer struct {
	profileSvc *service.ProfileService
	matchSvc   *service.MatchService
	logger     zerolog.Logger
}

func NewTrackerServer(profileSvc *service.ProfileService, matchSvc *service.MatchService, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{profileSvc: profileSvc, matchSvc: matchSvc, logger: logger}
}

// Routes mounts the API surface on a fresh chi router.
func (s *TrackerServer) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/regions", s.handleRegions)
		r.Get("/profiles/{server}/{gameName}/{tagLine}", s.handleProfile)
		r.Get("/matches/{puuid}", s.handleMatches)
	})
	return r
}

func (s *TrackerServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *TrackerServer) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"servers": region.Supported()})
}

func (s *TrackerServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	server := chi.URLParam(r, "server")
	gameName := chi.URLParam(r, "gameName")
	tagLine := chi.URLParam(r, "tagLine")
	force := r.URL.Query().Get("refresh") == "true"

	profile, err := s.profileSvc.GetProfile(r.Context(), server, gameName, tagLine, force)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *TrackerServer) handleMatches(w http.ResponseWriter, r *http.Request) {
	puuid := chi.URLParam(r, "puuid")
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	matches, err := s.matchSvc.GetMatches(r.Context(), puuid, offset, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

// writeError maps service errors onto status codes. Upstream failure
// detail is logged but never leaked to the client.
func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownServer):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("profile not found"))
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusBadGateway, errorBody("upstream request failed"))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
