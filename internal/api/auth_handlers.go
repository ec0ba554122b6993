package api

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"libtrack/internal/entity"
)

const bcryptCost = 10

// handleRegister creates a lender account. The admin account is seeded at
// startup and cannot be registered here.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg entity.Registration
	if err := readJSON(r, &reg); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Password = strings.TrimSpace(reg.Password)
	reg.Role = strings.TrimSpace(reg.Role)
	if reg.Role == "" {
		reg.Role = entity.RoleLender
	}

	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		s.respondError(w, http.StatusBadRequest, "Username, email, and password are required")
		return
	}
	if reg.Role != entity.RoleLender {
		s.respondError(w, http.StatusForbidden, "Only lenders can register via this endpoint")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcryptCost)
	if err != nil {
		s.respondInternal(w, "hash password", err)
		return
	}

	user := entity.User{
		Username: reg.Username,
		Email:    reg.Email,
		Role:     reg.Role,
	}
	if _, err := s.users.Create(r.Context(), user, string(hash)); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			s.respondError(w, http.StatusBadRequest, "Username or email already taken")
			return
		}
		s.respondInternal(w, "create user", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": entity.StatusRegistered,
		"role":   reg.Role,
	})
}

// handleLogin verifies the credentials and the requested role against the
// stored account. The response asserts the identity the frontend will hold
// in its session cookies.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds entity.Credentials
	if err := readJSON(r, &creds); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	creds.Username = strings.TrimSpace(creds.Username)
	creds.Password = strings.TrimSpace(creds.Password)
	creds.Role = strings.TrimSpace(creds.Role)
	if creds.Username == "" || creds.Password == "" || creds.Role == "" {
		s.respondError(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	user, hash, err := s.users.ByUsername(r.Context(), creds.Username)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "User not found")
			return
		}
		s.respondInternal(w, "load user", err)
		return
	}

	if user.Role != creds.Role {
		s.respondError(w, http.StatusForbidden, "Role mismatch")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil {
		s.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":   entity.StatusSuccess,
		"username": user.Username,
		"role":     user.Role,
		"user_id":  user.ID,
	})
}
