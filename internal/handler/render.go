package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"libtrack/internal/client"
	"libtrack/internal/entity"
	"libtrack/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(
	template.New("").Funcs(template.FuncMap{
		"date": func(t time.Time) string { return t.Format("2006-01-02") },
	}).ParseFS(templateFS, "templates/*.html"),
)

// User-facing messages. Backend rejections are shown verbatim instead of
// these; transport failures always collapse to msgConnectivity.
const (
	msgConnectivity   = "Error connecting to server"
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgLoadBooks      = "Error loading books"
	msgSearchBooks    = "Error searching books"
	msgLoadBook       = "Error loading book details"
	msgLoadBorrowed   = "Error loading borrowed books"
	msgLoadOverdue    = "Error loading overdue books"
	msgLoadUsers      = "Error loading users"
	msgInvalidForm    = "Please fill all fields with valid values"
	msgInvalidBookID  = "Invalid book ID"
	msgLoginFirst     = "Please login first."
	msgLoginToBorrow  = "Please login to borrow a book."

	placeholderBorrowed = "No books currently borrowed."
	placeholderOverdue  = "No overdue books."
	placeholderUsers    = "No registered users found."
)

// viewData is the single payload handed to every page template. Each render
// replaces the page wholesale; nothing carries over between requests.
type viewData struct {
	Title       string
	Session     entity.Session
	LoggedIn    bool
	IsAdmin     bool
	Error       string
	Flash       string
	Form        map[string]string
	Books       []entity.Book
	Records     []entity.BorrowRecord
	Users       []entity.User
	Book        entity.Book
	Query       string
	Placeholder string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data viewData) {
	if sess, ok := session.FromRequest(r); ok {
		data.Session = sess
		data.LoggedIn = true
		data.IsAdmin = sess.IsAdmin()
	}
	if data.Form == nil {
		data.Form = map[string]string{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render failed", "template", name, "err", err)
	}
}

// errorMessage maps a library call error onto what the user sees: the
// backend's own message when it sent one, the caller's fallback for a bare
// rejection, and the fixed connectivity message when the request itself
// failed.
func errorMessage(err error, fallback string) string {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return fallback
	}
	return msgConnectivity
}
