package server

import (
	"errors"
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// profileLogLimit is how many recent logs a profile page shows.
const profileLogLimit = 10

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in models.ProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	p := models.Profile{UserID: uid, Handle: in.Handle, DisplayName: in.DisplayName}
	if err := s.store.CreateProfile(r.Context(), p); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "handle is taken or profile already exists"})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	handle := models.NormalizeHandle(chi.URLParam(r, "handle"))
	p, err := s.store.GetProfileByHandle(r.Context(), handle)
	if err != nil {
		s.writeError(w, err)
		return
	}

	blocked, err := s.store.IsBlocked(r.Context(), uid, p.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// A blocked author's logs stay hidden here as they are in the feed.
	logs := []models.WorkoutLog{}
	if !blocked {
		recent, err := s.store.QueryUserLogs(r.Context(), p.UserID, profileLogLimit)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if recent != nil {
			logs = recent
		}
	}

	writeJSON(w, http.StatusOK, models.ProfileDetail{
		Profile:   *p,
		Logs:      logs,
		IsOwner:   p.UserID == uid,
		IsBlocked: blocked,
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in models.ProfileUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.UpdateProfile(r.Context(), uid, in); err != nil {
		s.writeError(w, err)
		return
	}

	p, err := s.store.GetProfile(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
