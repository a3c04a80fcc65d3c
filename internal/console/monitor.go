package console

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dispatch-console/internal/geo"
	"dispatch-console/internal/model"
	"dispatch-console/internal/poller"
	"dispatch-console/internal/session"
)

// Dispatch is the slice of the upstream API the console consumes.
type Dispatch interface {
	ActiveOrders(ctx context.Context, s *session.Session) ([]model.Order, error)
	OnlineDrivers(ctx context.Context, s *session.Session) ([]model.Driver, error)
	ArchivedOrders(ctx context.Context, s *session.Session) ([]model.Order, error)
	SearchArchive(ctx context.Context, s *session.Session, phone string) ([]model.Order, error)
	CancelOrder(ctx context.Context, s *session.Session, orderID int64) (*model.Order, error)
	AssignDriver(ctx context.Context, s *session.Session, orderID, driverID int64) (*model.Order, error)
}

// Monitor owns the live console state: the polled order and driver
// snapshots plus the operator's view state. All records are ephemeral
// copies owned by the backend; the only writes back are cancel and assign.
type Monitor struct {
	dispatch Dispatch
	log      zerolog.Logger

	mu        sync.Mutex
	orders    []model.Order
	drivers   []model.Driver
	fetchErr  string
	state     ViewState
	fittedSeq uint64
}

func NewMonitor(dispatch Dispatch, log zerolog.Logger) *Monitor {
	return &Monitor{dispatch: dispatch, log: log}
}

// Run starts the two refresh schedules: active orders every ordersInterval
// and online drivers every driversInterval (shorter, to keep marker
// positions near-real-time). The returned disposer stops both.
func (m *Monitor) Run(ctx context.Context, s *session.Session, ordersInterval, driversInterval time.Duration) poller.Stop {
	stopOrders := poller.Start(ctx, ordersInterval, func(ctx context.Context) {
		m.RefreshOrders(ctx, s)
	})
	stopDrivers := poller.Start(ctx, driversInterval, func(ctx context.Context) {
		m.RefreshDrivers(ctx, s)
	})
	return func() {
		stopOrders()
		stopDrivers()
	}
}

// RefreshOrders replaces the active-order snapshot. On failure the previous
// list stays on screen and the error is surfaced to the operator.
func (m *Monitor) RefreshOrders(ctx context.Context, s *session.Session) {
	orders, err := m.dispatch.ActiveOrders(ctx, s)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.fetchErr = err.Error()
		return
	}
	m.orders = orders
	m.fetchErr = ""
}

// RefreshDrivers replaces the online-driver snapshot. Driver markers are
// best-effort: failures are logged and never shown to the operator.
func (m *Monitor) RefreshDrivers(ctx context.Context, s *session.Session) {
	drivers, err := m.dispatch.OnlineDrivers(ctx, s)
	if err != nil {
		m.log.Warn().Err(err).Msg("online drivers refresh failed")
		return
	}

	m.mu.Lock()
	m.drivers = drivers
	m.mu.Unlock()
}

// OrdersView is what the order list screen renders.
type OrdersView struct {
	Items      []model.Order `json:"items"`
	Stats      Stats         `json:"stats"`
	SelectedID int64         `json:"selectedId,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// ActiveView applies the current filters to the order snapshot.
func (m *Monitor) ActiveView() OrdersView {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, stats := ApplyFilter(m.orders, m.state.Criteria)
	return OrdersView{
		Items:      items,
		Stats:      stats,
		SelectedID: m.state.SelectedID,
		Error:      m.fetchErr,
	}
}

// SetFilters replaces the filter criteria.
func (m *Monitor) SetFilters(phone string, bucket StatusBucket, from, to *time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.
		WithPhoneFilter(phone).
		WithBucket(bucket).
		WithDateRange(from, to)
}

// ToggleSelect toggles the selection on an order. Selecting an order that is
// not in the current snapshot is rejected.
func (m *Monitor) ToggleSelect(orderID int64) (ViewState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.SelectedID != orderID && m.findLocked(orderID) == nil {
		return m.state, ErrNotFound
	}
	m.state = m.state.ToggleSelect(orderID)
	return m.state, nil
}

func (m *Monitor) ClearSelection() ViewState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.ClearSelection()
	return m.state
}

// MapSnapshot renders the map: driver markers when nothing is selected, the
// selected order's route otherwise. The viewport is attached only on the
// first snapshot after a selection change, so later polls do not yank the
// camera away from the operator.
func (m *Monitor) MapSnapshot() geo.MapView {
	m.mu.Lock()
	defer m.mu.Unlock()

	selected := m.selectedLocked()
	view := geo.BuildMapView(m.drivers, selected)
	if m.state.SelectionSeq != m.fittedSeq {
		if selected != nil {
			if vp, ok := geo.FitViewport(*selected); ok {
				view.Viewport = vp
			}
		}
		m.fittedSeq = m.state.SelectionSeq
	}
	return view
}

// Drivers returns the online-driver snapshot.
func (m *Monitor) Drivers() []model.Driver {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Driver, len(m.drivers))
	copy(out, m.drivers)
	return out
}

// Cancel cancels an order after operator confirmation. Declining issues no
// network call and changes nothing. On success the order leaves the local
// list immediately and the selection is cleared if it pointed there.
func (m *Monitor) Cancel(ctx context.Context, s *session.Session, orderID int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}

	if _, err := m.dispatch.CancelOrder(ctx, s, orderID); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.orders[:0]
	for _, o := range m.orders {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	m.orders = kept
	if m.state.SelectedID == orderID {
		m.state = m.state.ClearSelection()
	}
	return true, nil
}

// Assign assigns a driver to a REQUESTED order. The driver id is operator
// input and must be numeric; bad input is rejected before any request goes
// out. There is no optimistic update: the local order changes only when the
// backend returns the updated record.
func (m *Monitor) Assign(ctx context.Context, s *session.Session, orderID int64, driverInput string) (*model.Order, error) {
	driverID, err := strconv.ParseInt(strings.TrimSpace(driverInput), 10, 64)
	if err != nil {
		return nil, ErrInvalidInput
	}

	m.mu.Lock()
	target := m.findLocked(orderID)
	if target == nil {
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	if target.Status != model.OrderStatusRequested {
		m.mu.Unlock()
		return nil, ErrInvalidStatus
	}
	m.mu.Unlock()

	updated, err := m.dispatch.AssignDriver(ctx, s, orderID, driverID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == updated.ID {
			m.orders[i] = *updated
			break
		}
	}
	return updated, nil
}

// Archive fetches the order archive, searching upstream when a phone number
// is given, and runs the same filter and statistics engine over the result.
func (m *Monitor) Archive(ctx context.Context, s *session.Session, crit Criteria) (OrdersView, error) {
	var (
		orders []model.Order
		err    error
	)
	if crit.Phone != "" {
		orders, err = m.dispatch.SearchArchive(ctx, s, crit.Phone)
	} else {
		orders, err = m.dispatch.ArchivedOrders(ctx, s)
	}
	if err != nil {
		return OrdersView{}, err
	}

	items, stats := ApplyFilter(orders, crit)
	return OrdersView{Items: items, Stats: stats}, nil
}

// selectedLocked resolves the selection against the current snapshot. An
// order that has left the active list (completed between polls) simply
// stops rendering as a route.
func (m *Monitor) selectedLocked() *model.Order {
	if !m.state.HasSelection() {
		return nil
	}
	return m.findLocked(m.state.SelectedID)
}

func (m *Monitor) findLocked(orderID int64) *model.Order {
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			return &m.orders[i]
		}
	}
	return nil
}
