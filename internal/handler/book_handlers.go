package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"libtrack/internal/entity"
	"libtrack/internal/session"
)

// handleAdminBooks renders the catalogue management page: the full listing
// with edit/delete actions for admins, plus the add-book form. The error
// query parameter carries add-form failures across the redirect.
func (s *Server) handleAdminBooks(w http.ResponseWriter, r *http.Request) {
	data := viewData{
		Title: "Manage Books",
		Flash: s.popFlash(w, r),
		Error: r.URL.Query().Get("error"),
	}

	books, err := s.library.ListBooks(r.Context())
	if err != nil {
		s.logger.Error("list books", "err", err)
		data.Error = msgLoadBooks
		s.render(w, r, "admin_books.html", data)
		return
	}

	data.Books = books
	s.render(w, r, "admin_books.html", data)
}

// handleBrowseBooks renders the borrow-facing catalogue. The search box
// submits back to this page; every row carries a borrow action regardless of
// role.
func (s *Server) handleBrowseBooks(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search"))
	data := viewData{
		Title: "Browse Books",
		Query: query,
		Flash: s.popFlash(w, r),
	}

	books, err := s.library.SearchBooks(r.Context(), query)
	if err != nil {
		s.logger.Error("search books", "query", query, "err", err)
		if query != "" {
			data.Error = msgSearchBooks
		} else {
			data.Error = msgLoadBooks
		}
		s.render(w, r, "browse_books.html", data)
		return
	}

	data.Books = books
	s.render(w, r, "browse_books.html", data)
}

// handleAddBook validates the form before anything touches the network; a
// bad field redirects straight back with an inline error and the backend is
// never contacted.
func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.parseBookForm(r)
	if err != nil {
		s.redirectWithError(w, r, "/admin/books", msgInvalidForm)
		return
	}
	book.Status = entity.StatusAvailable

	if err := s.library.CreateBook(r.Context(), book); err != nil {
		s.logger.Error("create book", "err", err)
		s.redirectWithError(w, r, "/admin/books", errorMessage(err, "Failed to add book"))
		return
	}

	http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
}

// handleEditBookPage reads the target id from the query parameters and
// pre-fills the edit form from the current record.
func (s *Server) handleEditBookPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id < 1 {
		s.addFlash(w, r, msgInvalidBookID)
		http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
		return
	}

	book, err := s.library.GetBook(r.Context(), id)
	if err != nil {
		s.logger.Error("get book", "id", id, "err", err)
		s.addFlash(w, r, msgLoadBook)
		http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
		return
	}

	s.render(w, r, "edit_book.html", viewData{
		Title: "Edit Book",
		Flash: s.popFlash(w, r),
		Book:  book,
	})
}

// handleEditBook sends a full replacement of all fields, including the id.
func (s *Server) handleEditBook(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r, "id")
	if !ok {
		s.addFlash(w, r, msgInvalidBookID)
		http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
		return
	}

	book, err := s.parseBookForm(r)
	if err != nil {
		s.addFlash(w, r, msgInvalidForm)
		http.Redirect(w, r, "/admin/books/edit?id="+strconv.FormatInt(id, 10), http.StatusSeeOther)
		return
	}
	book.ID = id
	book.Status = strings.TrimSpace(r.FormValue("status"))
	if book.Status == "" {
		book.Status = entity.StatusAvailable
	}

	if err := s.library.UpdateBook(r.Context(), book); err != nil {
		s.logger.Error("update book", "id", id, "err", err)
		s.addFlash(w, r, errorMessage(err, "Failed to edit book"))
		http.Redirect(w, r, "/admin/books/edit?id="+strconv.FormatInt(id, 10), http.StatusSeeOther)
		return
	}

	s.addFlash(w, r, "Book updated successfully")
	http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r, "id")
	if !ok {
		s.addFlash(w, r, msgInvalidBookID)
		http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
		return
	}

	if err := s.library.DeleteBook(r.Context(), id); err != nil {
		s.logger.Error("delete book", "id", id, "err", err)
		s.addFlash(w, r, errorMessage(err, "Failed to delete book"))
	} else {
		s.addFlash(w, r, "Book deleted successfully")
	}
	http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
}

// handleBorrowBook requires a present session; without one the user is sent
// to the login page and no request is issued.
func (s *Server) handleBorrowBook(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromRequest(r)
	if !ok {
		s.addFlash(w, r, msgLoginToBorrow)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, ok := formID(r, "id")
	if !ok {
		s.addFlash(w, r, msgInvalidBookID)
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}

	if err := s.library.BorrowBook(r.Context(), id, sess.UserID); err != nil {
		s.logger.Error("borrow book", "book_id", id, "user_id", sess.UserID, "err", err)
		s.addFlash(w, r, errorMessage(err, "Failed to borrow book"))
	} else {
		s.addFlash(w, r, "Book borrowed successfully")
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (s *Server) redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
