package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"libtrack/internal/entity"
)

func (c *Client) BorrowBook(ctx context.Context, bookID, userID int64) error {
	body := map[string]int64{
		"book_id": bookID,
		"user_id": userID,
	}
	data, err := c.do(ctx, http.MethodPost, "/api/borrow", nil, body)
	if err != nil {
		return err
	}
	return expectStatus(data, entity.StatusBorrowed)
}

// ReturnBook terminates a borrow transaction. It is keyed by the borrow
// record id, not the book id.
func (c *Client) ReturnBook(ctx context.Context, recordID int64) error {
	data, err := c.do(ctx, http.MethodPut, "/api/borrow", nil, map[string]int64{"record_id": recordID})
	if err != nil {
		return err
	}
	return expectStatus(data, entity.StatusReturned)
}

// BorrowedBooks lists the user's active borrow records.
func (c *Client) BorrowedBooks(ctx context.Context, userID int64) ([]entity.BorrowRecord, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))

	var records []entity.BorrowRecord
	if err := c.getJSON(ctx, "/api/borrow", q, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// OverdueBooks lists the user's active records whose due date has passed.
func (c *Client) OverdueBooks(ctx context.Context, userID int64) ([]entity.BorrowRecord, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))

	var records []entity.BorrowRecord
	if err := c.getJSON(ctx, "/api/borrow/overdue", q, &records); err != nil {
		return nil, err
	}
	return records, nil
}
