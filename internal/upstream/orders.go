package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"dispatch-console/internal/model"
	"dispatch-console/internal/session"
)

// ActiveOrders returns every order in REQUESTED, ACCEPTED or IN_PROGRESS,
// most recent first. The backend is expected to sort, but responses have
// arrived unordered, so the client sorts by descending id itself.
func (c *Client) ActiveOrders(ctx context.Context, s *session.Session) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, s, http.MethodGet, "/admin/orders/active", nil, nil, &orders); err != nil {
		return nil, err
	}
	sortOrdersDesc(orders)
	return orders, nil
}

// ArchivedOrders returns COMPLETED and CANCELLED orders.
func (c *Client) ArchivedOrders(ctx context.Context, s *session.Session) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, s, http.MethodGet, "/admin/orders/archive", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SearchArchive looks up archived orders by client phone number upstream.
func (c *Client) SearchArchive(ctx context.Context, s *session.Session, phone string) ([]model.Order, error) {
	query := url.Values{"phone": []string{phone}}
	var orders []model.Order
	if err := c.do(ctx, s, http.MethodGet, "/admin/orders/archive/search", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder cancels an order on behalf of the dispatcher and returns the
// updated record (status CANCELLED).
func (c *Client) CancelOrder(ctx context.Context, s *session.Session, orderID int64) (*model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/admin/orders/%d/cancel", orderID)
	if err := c.do(ctx, s, http.MethodPost, path, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AssignDriver assigns a driver to a REQUESTED order. On success the backend
// returns the updated order with status ACCEPTED and the driver populated;
// on a busy or unknown driver it returns a business error with a message.
func (c *Client) AssignDriver(ctx context.Context, s *session.Session, orderID, driverID int64) (*model.Order, error) {
	query := url.Values{"driverId": []string{strconv.FormatInt(driverID, 10)}}
	var order model.Order
	path := fmt.Sprintf("/admin/orders/%d/assign", orderID)
	if err := c.do(ctx, s, http.MethodPost, path, query, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func sortOrdersDesc(orders []model.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID > orders[j].ID
	})
}
