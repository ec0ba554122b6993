package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"libtrack/internal/entity"
)

// ListBooks fetches the full catalogue (the admin listing endpoint).
func (c *Client) ListBooks(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	if err := c.getJSON(ctx, "/api/admin", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// SearchBooks fetches the browse listing, filtered by the raw query string.
// An empty query returns the whole catalogue.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]entity.Book, error) {
	q := url.Values{}
	q.Set("search", query)

	var books []entity.Book
	if err := c.getJSON(ctx, "/api/admin/books", q, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) GetBook(ctx context.Context, id int64) (entity.Book, error) {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(id, 10))

	var book entity.Book
	if err := c.getJSON(ctx, "/api/book", q, &book); err != nil {
		return entity.Book{}, err
	}
	return book, nil
}

// CreateBook adds a new catalogue record. The backend assigns the id and
// forces status to "available".
func (c *Client) CreateBook(ctx context.Context, book entity.Book) error {
	_, err := c.do(ctx, http.MethodPost, "/api/book", nil, book)
	return err
}

// UpdateBook sends a full replacement of all fields, including the id.
func (c *Client) UpdateBook(ctx context.Context, book entity.Book) error {
	_, err := c.do(ctx, http.MethodPut, "/api/book", nil, book)
	return err
}

func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	data, err := c.do(ctx, http.MethodDelete, "/api/book", nil, map[string]int64{"id": id})
	if err != nil {
		return err
	}
	return expectStatus(data, entity.StatusBookDeleted)
}
