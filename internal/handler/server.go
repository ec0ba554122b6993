// Package handler serves the library pages. Each page handler mirrors one of
// the application's fixed pages: it fetches what the page shows through the
// REST client, renders the list or form, and wires the page's actions to
// further backend calls.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"

	"libtrack/internal/entity"
)

// Library is the slice of the REST client the page handlers use. Tests swap
// in a fake.
type Library interface {
	Login(ctx context.Context, creds entity.Credentials) (entity.Session, error)
	Register(ctx context.Context, reg entity.Registration) error

	ListBooks(ctx context.Context) ([]entity.Book, error)
	SearchBooks(ctx context.Context, query string) ([]entity.Book, error)
	GetBook(ctx context.Context, id int64) (entity.Book, error)
	CreateBook(ctx context.Context, book entity.Book) error
	UpdateBook(ctx context.Context, book entity.Book) error
	DeleteBook(ctx context.Context, id int64) error

	BorrowBook(ctx context.Context, bookID, userID int64) error
	ReturnBook(ctx context.Context, recordID int64) error
	BorrowedBooks(ctx context.Context, userID int64) ([]entity.BorrowRecord, error)
	OverdueBooks(ctx context.Context, userID int64) ([]entity.BorrowRecord, error)

	ListUsers(ctx context.Context) ([]entity.User, error)
	DeleteUser(ctx context.Context, id int64) error
	AllBorrowed(ctx context.Context) ([]entity.BorrowRecord, error)
	AllOverdue(ctx context.Context) ([]entity.BorrowRecord, error)
}

// Server holds dependencies for the page handlers.
type Server struct {
	library  Library
	flashes  *sessions.CookieStore
	validate *validator.Validate
	router   *chi.Mux
	logger   *slog.Logger
}

// NewServer creates a page server with all routes configured. Routes are
// registered on a fresh router owned by this Server, so constructing another
// Server never double-registers anything.
func NewServer(library Library, sessionKey []byte, logger *slog.Logger) *Server {
	s := &Server{
		library:  library,
		flashes:  sessions.NewCookieStore(sessionKey),
		validate: validator.New(),
		router:   chi.NewRouter(),
		logger:   logger,
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

// setupRoutes is the page table: one route per page of the application, plus
// one route per form action. Anything else 404s.
func (s *Server) setupRoutes() {
	// Auth pages.
	s.router.Get("/", s.handleLoginPage)
	s.router.Get("/login", s.handleLoginPage)
	s.router.Post("/login", s.handleLogin)
	s.router.Get("/register", s.handleRegisterPage)
	s.router.Post("/register", s.handleRegister)
	s.router.Post("/logout", s.handleLogout)

	// Dashboards.
	s.router.Get("/admin/dashboard", s.handleAdminDashboard)
	s.router.Get("/lender/dashboard", s.handleLenderDashboard)

	// Catalogue.
	s.router.Get("/admin/books", s.handleAdminBooks)
	s.router.Get("/admin/books/edit", s.handleEditBookPage)
	s.router.Post("/books/add", s.handleAddBook)
	s.router.Post("/books/edit", s.handleEditBook)
	s.router.Post("/books/delete", s.handleDeleteBook)
	s.router.Get("/books", s.handleBrowseBooks)
	s.router.Post("/books/borrow", s.handleBorrowBook)

	// Borrowing.
	s.router.Get("/my-books", s.handleMyBooks)
	s.router.Get("/return-books", s.handleReturnBooks)
	s.router.Get("/due-books", s.handleDueBooks)
	s.router.Post("/borrow/return", s.handleReturnBook)

	// User administration and reports.
	s.router.Get("/admin/users", s.handleAdminUsers)
	s.router.Post("/admin/users/delete", s.handleDeleteUser)
	s.router.Get("/admin/borrowed", s.handleAdminBorrowed)
	s.router.Get("/admin/overdue", s.handleAdminOverdue)
}
