package handler

import (
	"net/http"
	"strings"

	"libtrack/internal/entity"
	"libtrack/internal/session"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", viewData{
		Title: "Login",
		Flash: s.popFlash(w, r),
	})
}

// handleLogin posts the credentials, establishes the session cookies from the
// backend's answer and redirects by role. Failures re-render the form with
// the error inline; no cookies are written and no navigation happens.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	creds := entity.Credentials{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: strings.TrimSpace(r.FormValue("password")),
		Role:     strings.TrimSpace(r.FormValue("role")),
	}

	sess, err := s.library.Login(r.Context(), creds)
	if err != nil {
		s.render(w, r, "login.html", viewData{
			Title: "Login",
			Error: errorMessage(err, msgLoginFailed),
			Form:  map[string]string{"username": creds.Username, "role": creds.Role},
		})
		return
	}

	session.Set(w, sess)
	if sess.IsAdmin() {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/lender/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", viewData{Title: "Register"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	reg := entity.Registration{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: strings.TrimSpace(r.FormValue("password")),
		Role:     strings.TrimSpace(r.FormValue("role")),
	}
	if reg.Role == "" {
		reg.Role = entity.RoleLender
	}

	if err := s.library.Register(r.Context(), reg); err != nil {
		s.render(w, r, "register.html", viewData{
			Title: "Register",
			Error: errorMessage(err, msgRegisterFailed),
			Form:  map[string]string{"username": reg.Username, "email": reg.Email},
		})
		return
	}

	s.addFlash(w, r, "Registration successful, please log in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLogout clears the identity cookies and navigates to the login page.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "admin_dashboard.html", viewData{Title: "Admin Dashboard"})
}

func (s *Server) handleLenderDashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "lender_dashboard.html", viewData{Title: "Lender Dashboard"})
}
