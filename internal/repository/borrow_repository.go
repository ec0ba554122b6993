package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"libtrack/internal/entity"
)

type BorrowRepository struct {
	db *sql.DB
}

func NewBorrowRepository(db *sql.DB) *BorrowRepository {
	return &BorrowRepository{db: db}
}

// Borrow inserts an active record and decrements the book's copy count in a
// single transaction. The row lock on the book keeps two concurrent borrows
// from taking the last copy twice.
func (r *BorrowRepository) Borrow(ctx context.Context, userID, bookID int64, due time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin borrow: %w", err)
	}
	defer tx.Rollback()

	var copies int
	err = tx.QueryRowContext(ctx, `
		SELECT copies_available FROM books WHERE id = $1 FOR UPDATE
	`, bookID).Scan(&copies)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock book: %w", err)
	}
	if copies <= 0 {
		return entity.ErrNoCopies
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO borrow_records (user_id, book_id, borrow_date, due_date)
		VALUES ($1, $2, NOW(), $3)
	`, userID, bookID, due)
	if err != nil {
		return fmt.Errorf("insert borrow record: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books SET copies_available = copies_available - 1 WHERE id = $1
	`, bookID)
	if err != nil {
		return fmt.Errorf("decrement copies: %w", err)
	}

	return tx.Commit()
}

// Return stamps the record's return date and gives the copy back to the
// book. Only active records can be returned.
func (r *BorrowRepository) Return(ctx context.Context, recordID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin return: %w", err)
	}
	defer tx.Rollback()

	var bookID int64
	err = tx.QueryRowContext(ctx, `
		SELECT book_id FROM borrow_records
		WHERE id = $1 AND return_date IS NULL
		FOR UPDATE
	`, recordID).Scan(&bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock borrow record: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE borrow_records SET return_date = NOW() WHERE id = $1
	`, recordID)
	if err != nil {
		return fmt.Errorf("stamp return date: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books SET copies_available = copies_available + 1 WHERE id = $1
	`, bookID)
	if err != nil {
		return fmt.Errorf("increment copies: %w", err)
	}

	return tx.Commit()
}

func (r *BorrowRepository) ActiveByUser(ctx context.Context, userID int64) ([]entity.BorrowRecord, error) {
	return r.queryRecords(ctx, `
		SELECT br.id, b.title, b.author, br.borrow_date, br.due_date
		FROM borrow_records br
		JOIN books b ON br.book_id = b.id
		WHERE br.user_id = $1 AND br.return_date IS NULL
		ORDER BY br.due_date
	`, false, userID)
}

func (r *BorrowRepository) OverdueByUser(ctx context.Context, userID int64) ([]entity.BorrowRecord, error) {
	return r.queryRecords(ctx, `
		SELECT br.id, b.title, b.author, br.borrow_date, br.due_date
		FROM borrow_records br
		JOIN books b ON br.book_id = b.id
		WHERE br.user_id = $1 AND br.return_date IS NULL AND br.due_date < NOW()
		ORDER BY br.due_date
	`, false, userID)
}

func (r *BorrowRepository) AllActive(ctx context.Context) ([]entity.BorrowRecord, error) {
	return r.queryRecords(ctx, `
		SELECT br.id, b.title, b.author, u.username, br.borrow_date, br.due_date
		FROM borrow_records br
		JOIN books b ON br.book_id = b.id
		JOIN users u ON br.user_id = u.id
		WHERE br.return_date IS NULL
		ORDER BY br.due_date
	`, true)
}

func (r *BorrowRepository) AllOverdue(ctx context.Context) ([]entity.BorrowRecord, error) {
	return r.queryRecords(ctx, `
		SELECT br.id, b.title, b.author, u.username, br.borrow_date, br.due_date
		FROM borrow_records br
		JOIN books b ON br.book_id = b.id
		JOIN users u ON br.user_id = u.id
		WHERE br.return_date IS NULL AND br.due_date < NOW()
		ORDER BY br.due_date
	`, true)
}

// queryRecords runs one of the record list queries. withUsername must match
// whether the query selects the borrower's username.
func (r *BorrowRepository) queryRecords(ctx context.Context, query string, withUsername bool, args ...any) ([]entity.BorrowRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select borrow records: %w", err)
	}
	defer rows.Close()

	var records []entity.BorrowRecord
	for rows.Next() {
		var rec entity.BorrowRecord
		if withUsername {
			err = rows.Scan(&rec.ID, &rec.Title, &rec.Author, &rec.Username, &rec.BorrowDate, &rec.DueDate)
		} else {
			err = rows.Scan(&rec.ID, &rec.Title, &rec.Author, &rec.BorrowDate, &rec.DueDate)
		}
		if err != nil {
			return nil, fmt.Errorf("scan borrow record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
