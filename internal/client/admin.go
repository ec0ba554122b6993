package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"libtrack/internal/entity"
)

func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := c.getJSON(ctx, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(id, 10))

	data, err := c.do(ctx, http.MethodDelete, "/api/admin/users", q, nil)
	if err != nil {
		return err
	}
	return expectStatus(data, entity.StatusDeleted)
}

// AllBorrowed lists active borrow records across every user, with the
// borrower's username attached.
func (c *Client) AllBorrowed(ctx context.Context) ([]entity.BorrowRecord, error) {
	var records []entity.BorrowRecord
	if err := c.getJSON(ctx, "/api/admin/borrowed", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AllOverdue lists overdue records across every user.
func (c *Client) AllOverdue(ctx context.Context) ([]entity.BorrowRecord, error) {
	var records []entity.BorrowRecord
	if err := c.getJSON(ctx, "/api/admin/overdue", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
