package api

import (
	"context"
	"time"

	"libtrack/internal/entity"
)

// UserStore persists accounts. ByUsername also returns the stored password
// hash, which never leaves the api package.
type UserStore interface {
	Create(ctx context.Context, user entity.User, passwordHash string) (int64, error)
	ByUsername(ctx context.Context, username string) (entity.User, string, error)
	All(ctx context.Context) ([]entity.User, error)
	Delete(ctx context.Context, id int64) error
}

type BookStore interface {
	All(ctx context.Context) ([]entity.Book, error)
	Search(ctx context.Context, term string) ([]entity.Book, error)
	ByID(ctx context.Context, id int64) (entity.Book, error)
	Create(ctx context.Context, book entity.Book) (int64, error)
	Update(ctx context.Context, book entity.Book) error
	Delete(ctx context.Context, id int64) error
}

// BorrowStore persists borrow transactions. Borrow and Return are atomic
// with the copy-count adjustment on the book.
type BorrowStore interface {
	Borrow(ctx context.Context, userID, bookID int64, due time.Time) error
	Return(ctx context.Context, recordID int64) error
	ActiveByUser(ctx context.Context, userID int64) ([]entity.BorrowRecord, error)
	OverdueByUser(ctx context.Context, userID int64) ([]entity.BorrowRecord, error)
	AllActive(ctx context.Context) ([]entity.BorrowRecord, error)
	AllOverdue(ctx context.Context) ([]entity.BorrowRecord, error)
}
