package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"libtrack/internal/entity"
)

var errInvalidForm = errors.New("invalid book form")

// bookForm mirrors the add/edit book form as submitted. The numeric fields
// stay strings here so a non-numeric entry is a validation failure, not a
// parse panic.
type bookForm struct {
	Title           string `validate:"required"`
	Author          string `validate:"required"`
	ISBN            string `validate:"required"`
	PublicationYear string `validate:"required,numeric"`
	Genre           string `validate:"required"`
	CopiesAvailable string `validate:"required,numeric"`
}

// parseBookForm validates the submitted fields and converts them into a Book.
// It never touches the network: a failure here means the backend was not
// contacted.
func (s *Server) parseBookForm(r *http.Request) (entity.Book, error) {
	form := bookForm{
		Title:           strings.TrimSpace(r.FormValue("title")),
		Author:          strings.TrimSpace(r.FormValue("author")),
		ISBN:            strings.TrimSpace(r.FormValue("isbn")),
		PublicationYear: strings.TrimSpace(r.FormValue("publication_year")),
		Genre:           strings.TrimSpace(r.FormValue("genre")),
		CopiesAvailable: strings.TrimSpace(r.FormValue("copies_available")),
	}
	if err := s.validate.Struct(form); err != nil {
		return entity.Book{}, errInvalidForm
	}

	year, err := strconv.Atoi(form.PublicationYear)
	if err != nil {
		return entity.Book{}, errInvalidForm
	}
	copies, err := strconv.Atoi(form.CopiesAvailable)
	if err != nil {
		return entity.Book{}, errInvalidForm
	}

	return entity.Book{
		Title:           form.Title,
		Author:          form.Author,
		ISBN:            form.ISBN,
		PublicationYear: year,
		Genre:           form.Genre,
		CopiesAvailable: copies,
	}, nil
}

func formID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(name)), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
