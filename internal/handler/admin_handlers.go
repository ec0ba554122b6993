package handler

import "net/http"

// handleAdminUsers lists every registered user with a delete action per row.
func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	data := viewData{
		Title:       "Registered Users",
		Flash:       s.popFlash(w, r),
		Placeholder: placeholderUsers,
	}

	users, err := s.library.ListUsers(r.Context())
	if err != nil {
		s.logger.Error("list users", "err", err)
		data.Error = msgLoadUsers
		s.render(w, r, "admin_users.html", data)
		return
	}

	data.Users = users
	s.render(w, r, "admin_users.html", data)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r, "id")
	if !ok {
		s.addFlash(w, r, "Invalid user ID")
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	if err := s.library.DeleteUser(r.Context(), id); err != nil {
		s.logger.Error("delete user", "id", id, "err", err)
		s.addFlash(w, r, errorMessage(err, "Failed to delete user"))
	} else {
		s.addFlash(w, r, "User deleted successfully")
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// handleAdminBorrowed is the read-only cross-user borrow report.
func (s *Server) handleAdminBorrowed(w http.ResponseWriter, r *http.Request) {
	data := viewData{
		Title:       "All Borrowed Books",
		Placeholder: placeholderBorrowed,
	}

	records, err := s.library.AllBorrowed(r.Context())
	if err != nil {
		s.logger.Error("list all borrowed", "err", err)
		data.Error = msgLoadBorrowed
		s.render(w, r, "admin_borrowed.html", data)
		return
	}

	data.Records = records
	s.render(w, r, "admin_borrowed.html", data)
}

// handleAdminOverdue is the read-only cross-user overdue report.
func (s *Server) handleAdminOverdue(w http.ResponseWriter, r *http.Request) {
	data := viewData{
		Title:       "All Overdue Books",
		Placeholder: placeholderOverdue,
	}

	records, err := s.library.AllOverdue(r.Context())
	if err != nil {
		s.logger.Error("list all overdue", "err", err)
		data.Error = msgLoadOverdue
		s.render(w, r, "admin_overdue.html", data)
		return
	}

	data.Records = records
	s.render(w, r, "admin_overdue.html", data)
}
