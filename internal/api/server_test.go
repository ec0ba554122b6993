package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"libtrack/internal/entity"
)

type fakeUsers struct {
	users     map[string]entity.User
	hashes    map[string]string
	created   []entity.User
	createErr error
	all       []entity.User
	deleteErr error
	deletedID int64
}

func (f *fakeUsers) Create(_ context.Context, user entity.User, hash string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, user)
	return int64(len(f.created)), nil
}

func (f *fakeUsers) ByUsername(_ context.Context, username string) (entity.User, string, error) {
	user, ok := f.users[username]
	if !ok {
		return entity.User{}, "", entity.ErrNotFound
	}
	return user, f.hashes[username], nil
}

func (f *fakeUsers) All(_ context.Context) ([]entity.User, error) {
	return f.all, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeBooks struct {
	books      []entity.Book
	byID       map[int64]entity.Book
	created    []entity.Book
	updated    []entity.Book
	updateErr  error
	deleteErr  error
	deletedID  int64
	searchTerm string
}

func (f *fakeBooks) All(_ context.Context) ([]entity.Book, error) {
	return f.books, nil
}

func (f *fakeBooks) Search(_ context.Context, term string) ([]entity.Book, error) {
	f.searchTerm = term
	return f.books, nil
}

func (f *fakeBooks) ByID(_ context.Context, id int64) (entity.Book, error) {
	book, ok := f.byID[id]
	if !ok {
		return entity.Book{}, entity.ErrNotFound
	}
	return book, nil
}

func (f *fakeBooks) Create(_ context.Context, book entity.Book) (int64, error) {
	f.created = append(f.created, book)
	return int64(len(f.created)), nil
}

func (f *fakeBooks) Update(_ context.Context, book entity.Book) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, book)
	return nil
}

func (f *fakeBooks) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeBorrows struct {
	borrowErr  error
	lastUser   int64
	lastBook   int64
	lastDue    time.Time
	returnErr  error
	returnedID int64
	active     []entity.BorrowRecord
	overdue    []entity.BorrowRecord
}

func (f *fakeBorrows) Borrow(_ context.Context, userID, bookID int64, due time.Time) error {
	f.lastUser, f.lastBook, f.lastDue = userID, bookID, due
	return f.borrowErr
}

func (f *fakeBorrows) Return(_ context.Context, recordID int64) error {
	f.returnedID = recordID
	return f.returnErr
}

func (f *fakeBorrows) ActiveByUser(_ context.Context, _ int64) ([]entity.BorrowRecord, error) {
	return f.active, nil
}

func (f *fakeBorrows) OverdueByUser(_ context.Context, _ int64) ([]entity.BorrowRecord, error) {
	return f.overdue, nil
}

func (f *fakeBorrows) AllActive(_ context.Context) ([]entity.BorrowRecord, error) {
	return f.active, nil
}

func (f *fakeBorrows) AllOverdue(_ context.Context) ([]entity.BorrowRecord, error) {
	return f.overdue, nil
}

func newAPIServer(users *fakeUsers, books *fakeBooks, borrows *fakeBorrows) *Server {
	if users == nil {
		users = &fakeUsers{}
	}
	if books == nil {
		books = &fakeBooks{}
	}
	if borrows == nil {
		borrows = &fakeBorrows{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(users, books, borrows, logger)
}

func doJSON(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterLender(t *testing.T) {
	users := &fakeUsers{}
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pw",
		"role":     "lender",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "registered", body["status"])
	assert.Equal(t, "lender", body["role"])
	require.Len(t, users.created, 1)
	assert.Equal(t, "alice", users.created[0].Username)
}

func TestRegisterDefaultsToLender(t *testing.T) {
	users := &fakeUsers{}
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "pw",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, users.created, 1)
	assert.Equal(t, entity.RoleLender, users.created[0].Role)
}

func TestRegisterAdminForbidden(t *testing.T) {
	users := &fakeUsers{}
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "eve",
		"email":    "eve@example.com",
		"password": "pw",
		"role":     "admin",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only lenders can register via this endpoint", decodeBody(t, rec)["error"])
	assert.Empty(t, users.created)
}

func TestRegisterMissingFields(t *testing.T) {
	srv := newAPIServer(nil, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username, email, and password are required", decodeBody(t, rec)["error"])
}

func TestRegisterDuplicateAccount(t *testing.T) {
	users := &fakeUsers{createErr: entity.ErrDuplicate}
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pw",
		"role":     "lender",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username or email already taken", decodeBody(t, rec)["error"])
}

func loginFakes(t *testing.T, password string, user entity.User) *fakeUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUsers{
		users:  map[string]entity.User{user.Username: user},
		hashes: map[string]string{user.Username: string(hash)},
	}
}

func TestLoginSuccess(t *testing.T) {
	users := loginFakes(t, "secret", entity.User{ID: 7, Username: "alice", Role: "lender"})
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "secret",
		"role":     "lender",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "lender", body["role"])
	assert.EqualValues(t, 7, body["user_id"])
}

func TestLoginUnknownUser(t *testing.T) {
	srv := newAPIServer(&fakeUsers{users: map[string]entity.User{}}, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ghost",
		"password": "pw",
		"role":     "lender",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["error"])
}

func TestLoginRoleMismatch(t *testing.T) {
	users := loginFakes(t, "secret", entity.User{ID: 7, Username: "alice", Role: "lender"})
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "secret",
		"role":     "admin",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Role mismatch", decodeBody(t, rec)["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	users := loginFakes(t, "secret", entity.User{ID: 7, Username: "alice", Role: "lender"})
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
		"role":     "lender",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["error"])
}

func TestLoginMissingCredentials(t *testing.T) {
	srv := newAPIServer(nil, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing credentials", decodeBody(t, rec)["error"])
}

func TestListBooksEmptyIsArray(t *testing.T) {
	srv := newAPIServer(nil, &fakeBooks{}, nil)

	rec := doJSON(srv, http.MethodGet, "/api/admin", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestSearchBooksForwardsTerm(t *testing.T) {
	books := &fakeBooks{books: []entity.Book{{ID: 1, Title: "The Hobbit"}}}
	srv := newAPIServer(nil, books, nil)

	rec := doJSON(srv, http.MethodGet, "/api/admin/books?search=tolkien", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tolkien", books.searchTerm)
	assert.Contains(t, rec.Body.String(), "The Hobbit")
}

func TestGetBookInvalidID(t *testing.T) {
	srv := newAPIServer(nil, &fakeBooks{}, nil)

	rec := doJSON(srv, http.MethodGet, "/api/book?id=zero", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing or invalid book id", decodeBody(t, rec)["error"])
}

func TestGetBookNotFound(t *testing.T) {
	srv := newAPIServer(nil, &fakeBooks{byID: map[int64]entity.Book{}}, nil)

	rec := doJSON(srv, http.MethodGet, "/api/book?id=9", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", decodeBody(t, rec)["error"])
}

func TestCreateBookMissingFields(t *testing.T) {
	books := &fakeBooks{}
	srv := newAPIServer(nil, books, nil)

	rec := doJSON(srv, http.MethodPost, "/api/book", map[string]any{
		"title": "Dune",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing or invalid book fields", decodeBody(t, rec)["error"])
	assert.Empty(t, books.created)
}

func TestCreateBookForcesAvailability(t *testing.T) {
	books := &fakeBooks{}
	srv := newAPIServer(nil, books, nil)

	rec := doJSON(srv, http.MethodPost, "/api/book", map[string]any{
		"title":            "Dune",
		"author":           "Frank Herbert",
		"isbn":             "9780441013593",
		"publication_year": 1965,
		"genre":            "Science Fiction",
		"copies_available": 0,
		"status":           "whatever",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "book added", decodeBody(t, rec)["status"])
	require.Len(t, books.created, 1)
	assert.Equal(t, entity.StatusAvailable, books.created[0].Status)
	assert.Equal(t, 1, books.created[0].CopiesAvailable)
}

func TestUpdateBookNotFound(t *testing.T) {
	books := &fakeBooks{updateErr: entity.ErrNotFound}
	srv := newAPIServer(nil, books, nil)

	rec := doJSON(srv, http.MethodPut, "/api/book", map[string]any{
		"id":               99,
		"title":            "Dune",
		"author":           "Frank Herbert",
		"isbn":             "9780441013593",
		"publication_year": 1965,
		"genre":            "Science Fiction",
		"copies_available": 2,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", decodeBody(t, rec)["error"])
}

func TestDeleteBookNotFound(t *testing.T) {
	books := &fakeBooks{deleteErr: entity.ErrNotFound}
	srv := newAPIServer(nil, books, nil)

	rec := doJSON(srv, http.MethodDelete, "/api/book", map[string]int64{"id": 99})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", decodeBody(t, rec)["error"])
}

func TestDeleteBook(t *testing.T) {
	books := &fakeBooks{}
	srv := newAPIServer(nil, books, nil)

	rec := doJSON(srv, http.MethodDelete, "/api/book", map[string]int64{"id": 7})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "book deleted", decodeBody(t, rec)["status"])
	assert.Equal(t, int64(7), books.deletedID)
}

func TestBorrowSetsTwoWeekDue(t *testing.T) {
	borrows := &fakeBorrows{}
	srv := newAPIServer(nil, nil, borrows)

	before := time.Now()
	rec := doJSON(srv, http.MethodPost, "/api/borrow", map[string]int64{
		"book_id": 3,
		"user_id": 9,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "borrowed", decodeBody(t, rec)["status"])
	assert.Equal(t, int64(9), borrows.lastUser)
	assert.Equal(t, int64(3), borrows.lastBook)

	want := before.Add(14 * 24 * time.Hour)
	assert.WithinDuration(t, want, borrows.lastDue, time.Minute)
}

func TestBorrowNoCopies(t *testing.T) {
	borrows := &fakeBorrows{borrowErr: entity.ErrNoCopies}
	srv := newAPIServer(nil, nil, borrows)

	rec := doJSON(srv, http.MethodPost, "/api/borrow", map[string]int64{
		"book_id": 3,
		"user_id": 9,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No copies available", decodeBody(t, rec)["error"])
}

func TestBorrowMissingIDs(t *testing.T) {
	srv := newAPIServer(nil, nil, nil)

	rec := doJSON(srv, http.MethodPost, "/api/borrow", map[string]int64{"book_id": 3})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing book_id or user_id", decodeBody(t, rec)["error"])
}

func TestReturnUnknownRecord(t *testing.T) {
	borrows := &fakeBorrows{returnErr: entity.ErrNotFound}
	srv := newAPIServer(nil, nil, borrows)

	rec := doJSON(srv, http.MethodPut, "/api/borrow", map[string]int64{"record_id": 5})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Borrow record not found or already returned", decodeBody(t, rec)["error"])
}

func TestReturnSuccess(t *testing.T) {
	borrows := &fakeBorrows{}
	srv := newAPIServer(nil, nil, borrows)

	rec := doJSON(srv, http.MethodPut, "/api/borrow", map[string]int64{"record_id": 5})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "returned", decodeBody(t, rec)["status"])
	assert.Equal(t, int64(5), borrows.returnedID)
}

func TestBorrowedRequiresUserID(t *testing.T) {
	srv := newAPIServer(nil, nil, nil)

	rec := doJSON(srv, http.MethodGet, "/api/borrow", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or missing user_id", decodeBody(t, rec)["error"])
}

func TestBorrowedEmptyIsArray(t *testing.T) {
	srv := newAPIServer(nil, nil, &fakeBorrows{})

	rec := doJSON(srv, http.MethodGet, "/api/borrow?user_id=9", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestOverdueByUser(t *testing.T) {
	due := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	borrows := &fakeBorrows{overdue: []entity.BorrowRecord{
		{ID: 5, Title: "Dune", Author: "Herbert", DueDate: due},
	}}
	srv := newAPIServer(nil, nil, borrows)

	rec := doJSON(srv, http.MethodGet, "/api/borrow/overdue?user_id=9", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var records []entity.BorrowRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Dune", records[0].Title)
}

func TestListUsers(t *testing.T) {
	users := &fakeUsers{all: []entity.User{
		{ID: 2, Username: "alice", Email: "alice@example.com", Role: "lender"},
	}}
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodGet, "/api/admin/users", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestDeleteUser(t *testing.T) {
	users := &fakeUsers{}
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodDelete, "/api/admin/users?id=2", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deleted", decodeBody(t, rec)["status"])
	assert.Equal(t, int64(2), users.deletedID)
}

func TestDeleteUserMissingID(t *testing.T) {
	srv := newAPIServer(nil, nil, nil)

	rec := doJSON(srv, http.MethodDelete, "/api/admin/users", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or missing user ID", decodeBody(t, rec)["error"])
}

func TestDeleteUserWithActiveLoans(t *testing.T) {
	users := &fakeUsers{deleteErr: entity.ErrActiveLoans}
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodDelete, "/api/admin/users?id=2", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User has active borrowed books", decodeBody(t, rec)["error"])
}

func TestDeleteUserNotFound(t *testing.T) {
	users := &fakeUsers{deleteErr: entity.ErrNotFound}
	srv := newAPIServer(users, nil, nil)

	rec := doJSON(srv, http.MethodDelete, "/api/admin/users?id=99", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["error"])
}

func TestAllOverdueIncludesBorrower(t *testing.T) {
	due := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	borrows := &fakeBorrows{overdue: []entity.BorrowRecord{
		{ID: 9, Title: "Dune", Author: "Herbert", Username: "alice", DueDate: due},
	}}
	srv := newAPIServer(nil, nil, borrows)

	rec := doJSON(srv, http.MethodGet, "/api/admin/overdue", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestAllBorrowedEmptyIsArray(t *testing.T) {
	srv := newAPIServer(nil, nil, &fakeBorrows{})

	rec := doJSON(srv, http.MethodGet, "/api/admin/borrowed", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
