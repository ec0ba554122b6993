package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"libtrack/internal/entity"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

const bookColumns = `id, title, author, isbn, publication_year, genre, copies_available, status`

func (r *BookRepository) All(ctx context.Context) ([]entity.Book, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()
	return scanBooks(rows)
}

// Search matches the term against title, author and ISBN, case-insensitively.
func (r *BookRepository) Search(ctx context.Context, term string) ([]entity.Book, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE title ILIKE $1 OR author ILIKE $1 OR isbn ILIKE $1
		ORDER BY id
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *BookRepository) ByID(ctx context.Context, id int64) (entity.Book, error) {
	var b entity.Book
	err := r.db.QueryRowContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = $1
	`, id).Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublicationYear, &b.Genre, &b.CopiesAvailable, &b.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Book{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Book{}, fmt.Errorf("select book: %w", err)
	}
	return b, nil
}

func (r *BookRepository) Create(ctx context.Context, book entity.Book) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO books (title, author, isbn, publication_year, genre, copies_available, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, book.Title, book.Author, book.ISBN, book.PublicationYear, book.Genre, book.CopiesAvailable, book.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	return id, nil
}

func (r *BookRepository) Update(ctx context.Context, book entity.Book) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, publication_year = $4,
		    genre = $5, copies_available = $6, status = $7
		WHERE id = $8
	`, book.Title, book.Author, book.ISBN, book.PublicationYear, book.Genre, book.CopiesAvailable, book.Status, book.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return requireAffected(res)
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return requireAffected(res)
}

func scanBooks(rows *sql.Rows) ([]entity.Book, error) {
	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublicationYear, &b.Genre, &b.CopiesAvailable, &b.Status); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
