// Package session persists the logged-in identity in plain, path-scoped
// session cookies. The cookies are not signed; the frontend trusts them until
// a backend request fails, which matches how the rest of the application
// treats identity.
package session

import (
	"net/http"
	"strconv"

	"libtrack/internal/entity"
)

const (
	cookieUsername = "username"
	cookieUserID   = "user_id"
	cookieRole     = "role"
)

// Set writes the identity cookies. No explicit expiry: they live for the
// browser session.
func Set(w http.ResponseWriter, s entity.Session) {
	setCookie(w, cookieUsername, s.Username)
	setCookie(w, cookieUserID, strconv.FormatInt(s.UserID, 10))
	setCookie(w, cookieRole, s.Role)
}

// FromRequest reads the identity back. ok is false when either the username
// or the user id cookie is missing or unparseable; a missing role cookie
// still yields a valid session with an empty (non-admin) role.
func FromRequest(r *http.Request) (s entity.Session, ok bool) {
	username, err := r.Cookie(cookieUsername)
	if err != nil || username.Value == "" {
		return entity.Session{}, false
	}
	idCookie, err := r.Cookie(cookieUserID)
	if err != nil {
		return entity.Session{}, false
	}
	userID, err := strconv.ParseInt(idCookie.Value, 10, 64)
	if err != nil {
		return entity.Session{}, false
	}

	s = entity.Session{Username: username.Value, UserID: userID}
	if role, err := r.Cookie(cookieRole); err == nil {
		s.Role = role.Value
	}
	return s, true
}

// Clear overwrites all identity cookies with an already-expired timestamp.
func Clear(w http.ResponseWriter) {
	for _, name := range []string{cookieUsername, cookieUserID, cookieRole} {
		http.SetCookie(w, &http.Cookie{
			Name:   name,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
	}
}

func setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:  name,
		Value: value,
		Path:  "/",
	})
}
