package upstream

import (
	"context"
	"net/http"

	"dispatch-console/internal/model"
	"dispatch-console/internal/session"
)

type LoginResponse struct {
	Token    string         `json:"token"`
	UserID   int64          `json:"userId"`
	FullName string         `json:"fullName"`
	Role     model.UserRole `json:"role"`
}

// Login exchanges credentials for a bearer token and opens a session.
func (c *Client) Login(ctx context.Context, login, password string) (*session.Session, *LoginResponse, error) {
	body := map[string]string{"login": login, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, nil, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, nil, err
	}
	principal := model.Principal{
		UserID:   resp.UserID,
		FullName: resp.FullName,
		Role:     resp.Role,
	}
	return session.New(resp.Token, principal), &resp, nil
}
