package upstream

import (
	"context"
	"net/http"

	"dispatch-console/internal/model"
	"dispatch-console/internal/session"
)

// OnlineDrivers returns drivers currently online with live coordinates.
func (c *Client) OnlineDrivers(ctx context.Context, s *session.Session) ([]model.Driver, error) {
	var drivers []model.Driver
	if err := c.do(ctx, s, http.MethodGet, "/admin/drivers/online", nil, nil, &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}
