package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pokerduel/pokerduel/internal/engine"
	"github.com/pokerduel/pokerduel/internal/invite"
	"github.com/pokerduel/pokerduel/internal/registry"
)

var errParticipantUnavailable = errors.New("participant is not available to play")

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type registerRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type scheduleRequest struct {
	Phone    string `json:"phone"`
	Schedule string `json:"schedule"`
}

type startMatchRequest struct {
	Participants []string `json:"participants"`
}

type betRequest struct {
	Player string `json:"player"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

type discardRequest struct {
	Player  string `json:"player"`
	Indices []int  `json:"indices"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.directory.Register(r.Context(), req.Phone, req.Name); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "registered",
		"phone":  req.Phone,
		"name":   req.Name,
	})
}

func (s *Server) handleToggleAvailability(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if !s.decode(w, r, &req) {
		return
	}

	available, err := s.directory.ToggleAvailability(r.Context(), req.Phone)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"phone":     req.Phone,
		"available": available,
	})
}

func (s *Server) handleGetAvailability(w http.ResponseWriter, r *http.Request) {
	phone, ok := s.resolveQueryPlayer(w, r, true)
	if !ok {
		return
	}

	available, err := s.directory.Available(r.Context(), phone)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"phone":     phone,
		"available": available,
	})
}

func (s *Server) handleSetSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !s.decode(w, r, &req) {
		return
	}

	schedule, err := s.directory.SetSchedule(r.Context(), req.Phone, req.Schedule)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"phone":    req.Phone,
		"schedule": schedule,
	})
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	phone, ok := s.resolveQueryPlayer(w, r, true)
	if !ok {
		return
	}

	schedule, err := s.directory.GetSchedule(r.Context(), phone)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"phone":    phone,
		"schedule": schedule,
	})
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	var req startMatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	phones := make([]string, 0, len(req.Participants))
	for _, p := range req.Participants {
		phone, err := s.directory.ResolvePhone(r.Context(), p)
		if err != nil {
			s.writeError(w, err)
			return
		}
		available, err := s.directory.Available(r.Context(), phone)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if !available {
			s.writeError(w, errParticipantUnavailable)
			return
		}
		phones = append(phones, phone)
	}

	snap, err := s.engine.StartMatch(r.Context(), phones)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.invites.Send(r.Context(), snap.MatchID, phones); err != nil {
		s.logger.Error("Failed to record invites", "match", snap.MatchID, "error", err)
	}

	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.resolveQueryPlayer(w, r, false)
	if !ok {
		return
	}

	snap, err := s.engine.GetStatus(r.Context(), r.PathValue("id"), requester)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleHand(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.resolveQueryPlayer(w, r, true)
	if !ok {
		return
	}

	snap, err := s.engine.GetHand(r.Context(), r.PathValue("id"), requester)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleBet(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if !s.decode(w, r, &req) {
		return
	}

	actor, err := s.directory.ResolvePhone(r.Context(), req.Player)
	if err != nil {
		s.writeError(w, err)
		return
	}

	matchID := r.PathValue("id")
	snap, err := s.engine.PlaceBet(r.Context(), matchID, actor, req.Action, req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.broadcastEvents(matchID, snap)
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	var req discardRequest
	if !s.decode(w, r, &req) {
		return
	}

	actor, err := s.directory.ResolvePhone(r.Context(), req.Player)
	if err != nil {
		s.writeError(w, err)
		return
	}

	matchID := r.PathValue("id")
	snap, err := s.engine.Discard(r.Context(), matchID, actor, req.Indices)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.broadcastEvents(matchID, snap)
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAcceptInvite(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if !s.decode(w, r, &req) {
		return
	}

	phone, err := s.directory.ResolvePhone(r.Context(), req.Phone)
	if err != nil {
		s.writeError(w, err)
		return
	}

	matchID := r.PathValue("id")
	if err := s.invites.Accept(r.Context(), matchID, phone); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "accepted",
		"match_id": matchID,
		"phone":    phone,
	})
}

// resolveQueryPlayer reads the player query parameter and resolves names to
// phone numbers. When required is false an absent parameter yields "".
func (s *Server) resolveQueryPlayer(w http.ResponseWriter, r *http.Request, required bool) (string, bool) {
	player := r.URL.Query().Get("player")
	if player == "" {
		player = r.URL.Query().Get("phone")
	}
	if player == "" {
		if required {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "player query parameter required",
				Kind:  "invalid_request",
			})
			return "", false
		}
		return "", true
	}

	phone, err := s.directory.ResolvePhone(r.Context(), player)
	if err != nil {
		s.writeError(w, err)
		return "", false
	}
	return phone, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid request body",
			Kind:  "invalid_request",
		})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind, status := classify(err)
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

// classify maps an error to a machine-readable kind and HTTP status.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, registry.ErrInvalidPhone):
		return "invalid_phone", http.StatusBadRequest
	case errors.Is(err, registry.ErrInvalidSchedule):
		return "invalid_schedule", http.StatusBadRequest
	case errors.Is(err, registry.ErrNotRegistered):
		return "not_registered", http.StatusNotFound
	case errors.Is(err, invite.ErrNoInvite):
		return "no_invite", http.StatusNotFound
	case errors.Is(err, errParticipantUnavailable):
		return "participant_unavailable", http.StatusConflict
	}

	kind := engine.Kind(err)
	switch kind {
	case "match_not_found":
		return kind, http.StatusNotFound
	case "not_participant":
		return kind, http.StatusForbidden
	case "not_current_actor", "invalid_phase", "concurrent_modification":
		return kind, http.StatusConflict
	case "store_unavailable":
		return kind, http.StatusServiceUnavailable
	case "internal":
		return kind, http.StatusInternalServerError
	default:
		// Remaining kinds are caller mistakes: bad actions, bad amounts,
		// bad card indices, bad participant lists.
		return kind, http.StatusBadRequest
	}
}
