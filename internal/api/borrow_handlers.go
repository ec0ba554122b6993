package api

import (
	"errors"
	"net/http"
	"time"

	"libtrack/internal/entity"
)

// loanPeriod is how long a borrowed book may be kept before it counts as
// overdue.
const loanPeriod = 14 * 24 * time.Hour

func (s *Server) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BookID int64 `json:"book_id"`
		UserID int64 `json:"user_id"`
	}
	if err := readJSON(r, &body); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.BookID < 1 || body.UserID < 1 {
		s.respondError(w, http.StatusBadRequest, "Missing book_id or user_id")
		return
	}

	due := time.Now().Add(loanPeriod)
	if err := s.borrows.Borrow(r.Context(), body.UserID, body.BookID, due); err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "Book not found")
		case errors.Is(err, entity.ErrNoCopies):
			s.respondError(w, http.StatusBadRequest, "No copies available")
		default:
			s.respondInternal(w, "borrow book", err)
		}
		return
	}
	s.respondStatus(w, entity.StatusBorrowed)
}

// handleReturn terminates a borrow transaction by record id.
func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RecordID int64 `json:"record_id"`
	}
	if err := readJSON(r, &body); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.RecordID < 1 {
		s.respondError(w, http.StatusBadRequest, "Missing record_id")
		return
	}

	if err := s.borrows.Return(r.Context(), body.RecordID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Borrow record not found or already returned")
			return
		}
		s.respondInternal(w, "return book", err)
		return
	}
	s.respondStatus(w, entity.StatusReturned)
}

func (s *Server) handleBorrowed(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(r, "user_id")
	if !ok {
		s.respondError(w, http.StatusBadRequest, "Invalid or missing user_id")
		return
	}

	records, err := s.borrows.ActiveByUser(r.Context(), userID)
	if err != nil {
		s.respondInternal(w, "list borrowed", err)
		return
	}
	s.respondRecords(w, records)
}

func (s *Server) handleOverdue(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(r, "user_id")
	if !ok {
		s.respondError(w, http.StatusBadRequest, "Invalid or missing user_id")
		return
	}

	records, err := s.borrows.OverdueByUser(r.Context(), userID)
	if err != nil {
		s.respondInternal(w, "list overdue", err)
		return
	}
	s.respondRecords(w, records)
}
