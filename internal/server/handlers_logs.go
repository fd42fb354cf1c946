package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/feed"
	"github.com/claude/liftlog/internal/models"
)

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in models.LogInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	l, err := s.store.InsertLog(r.Context(), uid, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustUserID(w, r); !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	l, err := s.store.GetLog(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	profiles, err := s.store.GetProfiles(r.Context(), []int{l.UserID})
	if err != nil {
		s.writeError(w, err)
		return
	}
	var author *models.Profile
	if p, ok := profiles[l.UserID]; ok {
		author = &p
	}
	writeJSON(w, http.StatusOK, models.NewFeedEntry(*l, author))
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	q := r.URL.Query()
	page, err := s.feed.Build(r.Context(), uid, feed.Query{
		Limit:   limit,
		Explore: q.Get("view") == "explore",
		Text:    q.Get("q"),
		Tag:     q.Get("tag"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
