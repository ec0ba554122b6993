package api

import (
	"errors"
	"net/http"

	"libtrack/internal/entity"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.All(r.Context())
	if err != nil {
		s.respondInternal(w, "list users", err)
		return
	}
	if users == nil {
		users = []entity.User{}
	}
	s.respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r, "id")
	if !ok {
		s.respondError(w, http.StatusBadRequest, "Invalid or missing user ID")
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, entity.ErrActiveLoans):
			s.respondError(w, http.StatusConflict, "User has active borrowed books")
		default:
			s.respondInternal(w, "delete user", err)
		}
		return
	}
	s.respondStatus(w, entity.StatusDeleted)
}

func (s *Server) handleAllBorrowed(w http.ResponseWriter, r *http.Request) {
	records, err := s.borrows.AllActive(r.Context())
	if err != nil {
		s.respondInternal(w, "list all borrowed", err)
		return
	}
	s.respondRecords(w, records)
}

func (s *Server) handleAllOverdue(w http.ResponseWriter, r *http.Request) {
	records, err := s.borrows.AllOverdue(r.Context())
	if err != nil {
		s.respondInternal(w, "list all overdue", err)
		return
	}
	s.respondRecords(w, records)
}
