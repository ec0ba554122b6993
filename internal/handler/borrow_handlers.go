package handler

import (
	"net/http"

	"libtrack/internal/entity"
	"libtrack/internal/session"
)

// The three borrowed-book views share one shape: require a session, fetch the
// user's records, render a placeholder when there are none. They differ only
// in endpoint and which page the return action comes back to.

func (s *Server) handleMyBooks(w http.ResponseWriter, r *http.Request) {
	s.renderBorrowed(w, r, "my_books.html", "My Books", false)
}

func (s *Server) handleReturnBooks(w http.ResponseWriter, r *http.Request) {
	s.renderBorrowed(w, r, "return_books.html", "Return Books", false)
}

func (s *Server) handleDueBooks(w http.ResponseWriter, r *http.Request) {
	s.renderBorrowed(w, r, "due_books.html", "Due Books", true)
}

func (s *Server) renderBorrowed(w http.ResponseWriter, r *http.Request, page, title string, overdue bool) {
	sess, ok := session.FromRequest(r)
	if !ok {
		s.addFlash(w, r, msgLoginFirst)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := viewData{
		Title: title,
		Flash: s.popFlash(w, r),
	}

	var (
		records []entity.BorrowRecord
		err     error
	)
	if overdue {
		data.Placeholder = placeholderOverdue
		records, err = s.library.OverdueBooks(r.Context(), sess.UserID)
	} else {
		data.Placeholder = placeholderBorrowed
		records, err = s.library.BorrowedBooks(r.Context(), sess.UserID)
	}
	if err != nil {
		s.logger.Error("list borrow records", "user_id", sess.UserID, "overdue", overdue, "err", err)
		if overdue {
			data.Error = msgLoadOverdue
		} else {
			data.Error = msgLoadBorrowed
		}
		s.render(w, r, page, data)
		return
	}

	data.Records = records
	s.render(w, r, page, data)
}

// handleReturnBook is keyed by the borrow record id. After the attempt it
// refreshes whichever list view the action came from.
func (s *Server) handleReturnBook(w http.ResponseWriter, r *http.Request) {
	back := returnTarget(r.FormValue("from"))

	id, ok := formID(r, "record_id")
	if !ok {
		s.addFlash(w, r, "Invalid record ID")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if err := s.library.ReturnBook(r.Context(), id); err != nil {
		s.logger.Error("return book", "record_id", id, "err", err)
		s.addFlash(w, r, errorMessage(err, "Failed to return book"))
	} else {
		s.addFlash(w, r, "Book returned successfully")
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// returnTarget restricts the post-return redirect to the list views that can
// host a return action.
func returnTarget(from string) string {
	switch from {
	case "/my-books", "/return-books", "/due-books":
		return from
	default:
		return "/my-books"
	}
}
