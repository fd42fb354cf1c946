package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/progression"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	templates, err := s.store.ListTemplates(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if templates == nil {
		templates = []models.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := s.store.GetTemplate(r.Context(), id, uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	refs, err := s.store.GetLiftRefs(r.Context(), t.LiftIDs, uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if refs == nil {
		refs = []models.LiftRef{}
	}
	writeJSON(w, http.StatusOK, models.TemplateDetail{Template: *t, Lifts: refs})
}

// validTemplateInput validates in and checks every lift belongs to the caller.
func (s *Server) validTemplateInput(w http.ResponseWriter, r *http.Request, uid int, in *models.TemplateInput) bool {
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return false
	}
	refs, err := s.store.GetLiftRefs(r.Context(), in.LiftIDs, uid)
	if err != nil {
		s.writeError(w, err)
		return false
	}
	if len(refs) != len(in.LiftIDs) {
		s.writeError(w, &models.ValidationError{Field: "lift_ids", Message: "unknown lift"})
		return false
	}
	return true
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in models.TemplateInput
	if !decodeJSON(w, r, &in) || !s.validTemplateInput(w, r, uid, &in) {
		return
	}
	t, err := s.store.InsertTemplate(r.Context(), uid, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.TemplateInput
	if !decodeJSON(w, r, &in) || !s.validTemplateInput(w, r, uid, &in) {
		return
	}
	t, err := s.store.UpdateTemplate(r.Context(), id, uid, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteTemplate(r.Context(), id, uid); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePrefillTemplate suggests a log for the template's preferred lift.
// A template with no lifts yields an empty prefill.
func (s *Server) handlePrefillTemplate(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := s.store.GetTemplate(r.Context(), id, uid)
	if err != nil {
		s.writeError(w, err)
		return
	}

	liftID, ok := t.PreferredLiftID()
	if !ok {
		writeJSON(w, http.StatusOK, progression.Prefill{})
		return
	}
	lift, err := s.store.GetLift(r.Context(), liftID, uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progression.PrefillLog(lift.Name, lift.Config))
}
