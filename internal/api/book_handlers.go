package api

import (
	"errors"
	"net/http"
	"strings"

	"libtrack/internal/entity"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.All(r.Context())
	if err != nil {
		s.respondInternal(w, "list books", err)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	s.respondJSON(w, http.StatusOK, books)
}

func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	books, err := s.books.Search(r.Context(), term)
	if err != nil {
		s.respondInternal(w, "search books", err)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	s.respondJSON(w, http.StatusOK, books)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r, "id")
	if !ok {
		s.respondError(w, http.StatusBadRequest, "Missing or invalid book id")
		return
	}

	book, err := s.books.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		s.respondInternal(w, "get book", err)
		return
	}
	s.respondJSON(w, http.StatusOK, book)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var book entity.Book
	if err := readJSON(r, &book); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validBookFields(book) {
		s.respondError(w, http.StatusBadRequest, "Missing or invalid book fields")
		return
	}

	// New books always start out available, whatever the request says.
	book.Status = entity.StatusAvailable
	if book.CopiesAvailable < 1 {
		book.CopiesAvailable = 1
	}

	if _, err := s.books.Create(r.Context(), book); err != nil {
		s.respondInternal(w, "create book", err)
		return
	}
	s.respondStatus(w, entity.StatusBookAdded)
}

// handleUpdateBook replaces every field of the record identified by the id
// in the body.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var book entity.Book
	if err := readJSON(r, &book); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if book.ID < 1 {
		s.respondError(w, http.StatusBadRequest, "Invalid book id")
		return
	}
	if !validBookFields(book) {
		s.respondError(w, http.StatusBadRequest, "Missing or invalid book fields")
		return
	}
	if strings.TrimSpace(book.Status) == "" {
		book.Status = entity.StatusAvailable
	}

	if err := s.books.Update(r.Context(), book); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		s.respondInternal(w, "update book", err)
		return
	}
	s.respondStatus(w, entity.StatusBookUpdated)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int64 `json:"id"`
	}
	if err := readJSON(r, &body); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.ID < 1 {
		s.respondError(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	if err := s.books.Delete(r.Context(), body.ID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		s.respondInternal(w, "delete book", err)
		return
	}
	s.respondStatus(w, entity.StatusBookDeleted)
}

func validBookFields(book entity.Book) bool {
	return strings.TrimSpace(book.Title) != "" &&
		strings.TrimSpace(book.Author) != "" &&
		strings.TrimSpace(book.ISBN) != "" &&
		strings.TrimSpace(book.Genre) != "" &&
		book.PublicationYear != 0
}
