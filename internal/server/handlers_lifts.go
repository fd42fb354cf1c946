package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/progression"
)

func (s *Server) handleListLifts(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	lifts, err := s.store.ListLifts(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]models.LiftWithPreview, 0, len(lifts))
	for _, l := range lifts {
		out = append(out, l.WithPreview())
	}
	writeJSON(w, http.StatusOK, out)
}

// handleLiftDefaults returns the values a new lift starts with.
func (s *Server) handleLiftDefaults(w http.ResponseWriter, r *http.Request) {
	in := models.DefaultLiftInput()
	writeJSON(w, http.StatusOK, map[string]any{
		"input":   in,
		"preview": progression.ComputePreview(in.Config()),
	})
}

func (s *Server) handleCreateLift(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in models.LiftInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	lift, err := s.store.InsertLift(r.Context(), uid, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lift.WithPreview())
}

func (s *Server) handleGetLift(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	lift, err := s.store.GetLift(r.Context(), id, uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lift.WithPreview())
}

func (s *Server) handleUpdateLift(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.LiftInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	lift, err := s.store.UpdateLift(r.Context(), id, uid, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lift.WithPreview())
}

func (s *Server) handleDeleteLift(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteLift(r.Context(), id, uid); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreviewLift(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	lift, err := s.store.GetLift(r.Context(), id, uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progression.ComputePreview(lift.Config))
}
