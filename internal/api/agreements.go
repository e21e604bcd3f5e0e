package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/board"
)

type statusRequest struct {
	Status string `json:"status"`
}

type filtersRequest struct {
	Search     *string   `json:"search"`
	Statuses   *[]string `json:"statuses"`
	Priorities *[]string `json:"priorities"`
}

func (s *Server) listAgreements(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Agreements())
}

func (s *Server) createAgreement(w http.ResponseWriter, r *http.Request) {
	var d agreement.Draft
	if err := decode(w, r, &d); err != nil {
		writeError(w, err)
		return
	}

	if err := d.Validate(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.store.Create(d))
}

func (s *Server) getAgreement(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Agreement(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (s *Server) updateAgreement(w http.ResponseWriter, r *http.Request) {
	var p agreement.Patch
	if err := decode(w, r, &p); err != nil {
		writeError(w, err)
		return
	}

	if err := p.Validate(); err != nil {
		writeError(w, err)
		return
	}

	a, err := s.store.Update(mux.Vars(r)["id"], p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAgreement(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) changeStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	status, err := agreement.ParseStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	a, err := s.store.ChangeStatus(mux.Vars(r)["id"], status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (s *Server) replaceAgreements(w http.ResponseWriter, r *http.Request) {
	var list []agreement.Agreement
	if err := decode(w, r, &list); err != nil {
		writeError(w, err)
		return
	}

	seen := make(map[string]struct{}, len(list))
	for _, a := range list {
		if err := validateLoaded(a); err != nil {
			writeError(w, err)
			return
		}

		if _, ok := seen[a.ID]; ok {
			writeError(w, fmt.Errorf("%w: duplicate id %s", ErrBadRequest, a.ID))
			return
		}
		seen[a.ID] = struct{}{}
	}

	s.store.ReplaceAll(list)

	writeJSON(w, http.StatusOK, s.store.Agreements())
}

func validateLoaded(a agreement.Agreement) error {
	if a.ID == "" {
		return fmt.Errorf("%w: id is required", agreement.ErrInvalidField)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("agreement %s: %w: %q", a.ID, agreement.ErrInvalidStatus, a.Status)
	}
	if !a.Priority.Valid() {
		return fmt.Errorf("agreement %s: %w: %q", a.ID, agreement.ErrInvalidPriority, a.Priority)
	}
	if a.UpdatedAt.Before(a.CreatedAt) {
		return fmt.Errorf("agreement %s: %w: updatedAt before createdAt", a.ID, agreement.ErrInvalidField)
	}

	return nil
}

// getBoard projects with the stored criteria. The search, status and priority
// query parameters override them for this request only.
func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	criteria := s.store.Criteria()
	query := r.URL.Query()

	if query.Has("search") {
		criteria.Search = query.Get("search")
	}

	if query.Has("status") {
		statuses, err := board.ParseStatuses(splitValues(query["status"]))
		if err != nil {
			writeError(w, err)
			return
		}
		criteria.Statuses = statuses
	}

	if query.Has("priority") {
		priorities, err := board.ParsePriorities(splitValues(query["priority"]))
		if err != nil {
			writeError(w, err)
			return
		}
		criteria.Priorities = priorities
	}

	writeJSON(w, http.StatusOK, board.Project(s.store.Agreements(), criteria))
}

// splitValues accepts both repeated parameters and comma separated lists.
func splitValues(raw []string) []string {
	res := make([]string, 0, len(raw))
	for _, val := range raw {
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				res = append(res, part)
			}
		}
	}

	return res
}

func (s *Server) getFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Criteria())
}

// setFilters applies only the supplied criteria as a single store mutation.
func (s *Server) setFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	var (
		statuses   []agreement.Status
		priorities []agreement.Priority
		err        error
	)
	if req.Statuses != nil {
		if statuses, err = board.ParseStatuses(*req.Statuses); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Priorities != nil {
		if priorities, err = board.ParsePriorities(*req.Priorities); err != nil {
			writeError(w, err)
			return
		}
	}

	s.store.UpdateCriteria(func(c *board.Criteria) {
		if req.Search != nil {
			c.Search = *req.Search
		}
		if req.Statuses != nil {
			c.Statuses = statuses
		}
		if req.Priorities != nil {
			c.Priorities = priorities
		}
	})

	writeJSON(w, http.StatusOK, s.store.Criteria())
}
