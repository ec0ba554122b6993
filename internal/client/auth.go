package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"libtrack/internal/entity"
)

// Login authenticates the user and returns the session identity asserted by
// the backend.
func (c *Client) Login(ctx context.Context, creds entity.Credentials) (entity.Session, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, creds)
	if err != nil {
		return entity.Session{}, err
	}

	var p struct {
		Username string `json:"username"`
		UserID   int64  `json:"user_id"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return entity.Session{}, fmt.Errorf("decode response: %w", err)
	}
	return entity.Session{
		Username: p.Username,
		UserID:   p.UserID,
		Role:     p.Role,
	}, nil
}

// Register creates a lender account. A 2xx response is success; the body is
// not consulted.
func (c *Client) Register(ctx context.Context, reg entity.Registration) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, reg)
	return err
}
