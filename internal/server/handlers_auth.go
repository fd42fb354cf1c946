package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/claude/liftlog/internal/auth"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

type credentials struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !decodeJSON(w, r, &in) {
		return
	}
	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "login is required"})
		return
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	user, err := s.store.CreateUser(r.Context(), login, strings.TrimSpace(in.DisplayName), hash)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondWithToken(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !decodeJSON(w, r, &in) {
		return
	}
	user, err := s.store.GetUserByLogin(r.Context(), strings.ToLower(strings.TrimSpace(in.Login)))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, err)
		return
	}
	if user == nil || auth.CheckPassword(in.Password, user.PasswordHash) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": auth.ErrInvalidCredentials.Error()})
		return
	}
	s.respondWithToken(w, http.StatusOK, user)
}

func (s *Server) respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, User: user})
}

type meResponse struct {
	ID          int             `json:"id"`
	Login       string          `json:"login"`
	DisplayName string          `json:"display_name"`
	Profile     *models.Profile `json:"profile"`
	IsModerator bool            `json:"is_moderator"`
}

// handleMe returns the caller's account, profile (null until onboarding), and role.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	resp := meResponse{ID: uid}

	if info, ok := userInfoFromContext(r); ok {
		resp.Login, resp.DisplayName = info.Login, info.DisplayName
	} else {
		user, err := s.store.GetUser(r.Context(), uid)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Login, resp.DisplayName = user.Login, user.DisplayName
	}

	profile, err := s.store.GetProfile(r.Context(), uid)
	switch {
	case err == nil:
		resp.Profile = profile
	case !errors.Is(err, storage.ErrNotFound):
		s.writeError(w, err)
		return
	}

	resp.IsModerator, err = s.store.IsModerator(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
