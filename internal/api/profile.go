package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dealflow-labs/sponsorship-board/internal/dashboard"
	"github.com/dealflow-labs/sponsorship-board/internal/notification"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
	"github.com/dealflow-labs/sponsorship-board/internal/user"
)

type selectionRequest struct {
	AgreementID *string          `json:"agreementId"`
	DateRange   *store.DateRange `json:"dateRange"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type dashboardResponse struct {
	Metrics  *dashboard.Metrics  `json:"metrics"`
	Insights []dashboard.Insight `json:"insights"`
}

func (s *Server) getSelection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Selection())
}

func (s *Server) setSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.DateRange != nil {
		from, to := req.DateRange.From, req.DateRange.To
		if from != nil && to != nil && to.Before(*from) {
			writeError(w, fmt.Errorf("%w: date range ends before it starts", ErrBadRequest))
			return
		}
	}

	if req.AgreementID != nil {
		s.store.SetSelectedAgreement(*req.AgreementID)
	}
	if req.DateRange != nil {
		s.store.SetDateRange(*req.DateRange)
	}

	writeJSON(w, http.StatusOK, s.store.Selection())
}

func (s *Server) listNotifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Notifications())
}

func (s *Server) addNotification(w http.ResponseWriter, r *http.Request) {
	var d notification.Draft
	if err := decode(w, r, &d); err != nil {
		writeError(w, err)
		return
	}

	if strings.TrimSpace(d.Title) == "" {
		writeError(w, fmt.Errorf("%w: title is required", ErrBadRequest))
		return
	}
	if d.Type == "" {
		d.Type = notification.SeverityInfo
	}
	if !d.Type.Valid() {
		writeError(w, fmt.Errorf("%w: unknown notification type %q", ErrBadRequest, d.Type))
		return
	}

	writeJSON(w, http.StatusCreated, s.store.AddNotification(d))
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := s.store.MarkNotificationRead(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearNotifications(w http.ResponseWriter, _ *http.Request) {
	s.store.ClearNotifications()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listAchievements(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Achievements())
}

func (s *Server) unlockAchievement(w http.ResponseWriter, r *http.Request) {
	if err := s.store.UnlockAchievement(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dashboardResponse{
		Metrics:  s.store.Metrics(),
		Insights: s.store.Insights(),
	})
}

func (s *Server) getUser(w http.ResponseWriter, _ *http.Request) {
	u := s.store.User()
	if u == nil {
		writeError(w, fmt.Errorf("user: %w", store.ErrNotFound))
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (s *Server) setUser(w http.ResponseWriter, r *http.Request) {
	var u user.User
	if err := decode(w, r, &u); err != nil {
		writeError(w, err)
		return
	}

	if err := u.Validate(); err != nil {
		writeError(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	s.store.SetUser(&u)

	writeJSON(w, http.StatusOK, s.store.User())
}

func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	theme, err := user.ParseTheme(req.Theme)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	s.store.SetTheme(theme)

	writeJSON(w, http.StatusOK, themeRequest{Theme: string(theme)})
}
