// Package api implements the REST backend: authentication, the book
// catalogue, borrow/return transactions and the admin listings. Handlers talk
// to storage through the store interfaces so they can be tested without a
// database.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server holds dependencies for the API handlers.
type Server struct {
	users   UserStore
	books   BookStore
	borrows BorrowStore
	router  *chi.Mux
	logger  *slog.Logger
}

// NewServer creates an API server with all routes configured.
func NewServer(users UserStore, books BookStore, borrows BorrowStore, logger *slog.Logger) *Server {
	s := &Server{
		users:   users,
		books:   books,
		borrows: borrows,
		router:  chi.NewRouter(),
		logger:  logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// The admin listing doubles as the full catalogue endpoint; the
		// /admin/books variant takes the search parameter.
		r.Get("/admin", s.handleListBooks)
		r.Get("/admin/books", s.handleSearchBooks)

		r.Get("/book", s.handleGetBook)
		r.Post("/book", s.handleCreateBook)
		r.Put("/book", s.handleUpdateBook)
		r.Delete("/book", s.handleDeleteBook)

		r.Post("/borrow", s.handleBorrow)
		r.Put("/borrow", s.handleReturn)
		r.Get("/borrow", s.handleBorrowed)
		r.Get("/borrow/overdue", s.handleOverdue)

		r.Get("/admin/users", s.handleListUsers)
		r.Delete("/admin/users", s.handleDeleteUser)
		r.Get("/admin/borrowed", s.handleAllBorrowed)
		r.Get("/admin/overdue", s.handleAllOverdue)
	})
}
