package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/models"
)

// moderationQueueLimit caps the reports a moderator sees at once.
const moderationQueueLimit = 100

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in models.ReportInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.store.InsertReport(r.Context(), uid, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("report filed", "report", report.ID, "reporter", uid)
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var in models.BlockInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(uid); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.InsertBlock(r.Context(), uid, in.BlockedID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.store.QueryReports(r.Context(), moderationQueueLimit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleUpdateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.StatusUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.UpdateReportStatus(r.Context(), id, in.Status); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": in.Status})
}
