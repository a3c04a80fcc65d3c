package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dispatch-console/internal/geo"
	"dispatch-console/internal/model"
	"dispatch-console/internal/session"
)

type fakeDispatch struct {
	orders     []model.Order
	drivers    []model.Driver
	archived   []model.Order
	ordersErr  error
	driversErr error
	cancelErr  error
	assignErr  error

	assignResult *model.Order
	cancelCalls  int
	assignCalls  int
	searchPhone  string
}

func (f *fakeDispatch) ActiveOrders(ctx context.Context, s *session.Session) ([]model.Order, error) {
	return f.orders, f.ordersErr
}

func (f *fakeDispatch) OnlineDrivers(ctx context.Context, s *session.Session) ([]model.Driver, error) {
	return f.drivers, f.driversErr
}

func (f *fakeDispatch) ArchivedOrders(ctx context.Context, s *session.Session) ([]model.Order, error) {
	return f.archived, nil
}

func (f *fakeDispatch) SearchArchive(ctx context.Context, s *session.Session, phone string) ([]model.Order, error) {
	f.searchPhone = phone
	return f.archived, nil
}

func (f *fakeDispatch) CancelOrder(ctx context.Context, s *session.Session, orderID int64) (*model.Order, error) {
	f.cancelCalls++
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	cancelled := model.Order{ID: orderID, Status: model.OrderStatusCancelled}
	return &cancelled, nil
}

func (f *fakeDispatch) AssignDriver(ctx context.Context, s *session.Session, orderID, driverID int64) (*model.Order, error) {
	f.assignCalls++
	if f.assignErr != nil {
		return nil, f.assignErr
	}
	return f.assignResult, nil
}

func testSession() *session.Session {
	return session.New("token", model.Principal{UserID: 1, Role: model.UserRoleDispatcher})
}

func routeOrder(id int64, status model.OrderStatus) model.Order {
	return model.Order{
		ID:          id,
		Status:      status,
		Client:      model.ClientBrief{ID: id, PhoneNumber: "0991234567"},
		FromAddress: "Khreshchatyk 1",
		ToAddress:   "Boryspil Airport",
		OriginLat:   50.45, OriginLng: 30.52,
		DestLat: 50.34, DestLng: 30.89,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestMonitor(fake *fakeDispatch) *Monitor {
	m := NewMonitor(fake, zerolog.Nop())
	m.RefreshOrders(context.Background(), testSession())
	m.RefreshDrivers(context.Background(), testSession())
	return m
}

func TestRefreshOrders_KeepsStaleListOnFailure(t *testing.T) {
	fake := &fakeDispatch{orders: []model.Order{routeOrder(1, model.OrderStatusRequested)}}
	m := newTestMonitor(fake)

	fake.ordersErr = errors.New("network down")
	m.RefreshOrders(context.Background(), testSession())

	view := m.ActiveView()
	if len(view.Items) != 1 {
		t.Fatalf("stale list dropped: %d items", len(view.Items))
	}
	if view.Error == "" {
		t.Error("fetch failure not surfaced to operator")
	}

	// Recovery clears the banner.
	fake.ordersErr = nil
	m.RefreshOrders(context.Background(), testSession())
	if view := m.ActiveView(); view.Error != "" {
		t.Errorf("error banner survived a successful refresh: %q", view.Error)
	}
}

func TestRefreshDrivers_BestEffort(t *testing.T) {
	fake := &fakeDispatch{drivers: []model.Driver{{ID: 3, FullName: "Ivan", Latitude: 50.4, Longitude: 30.5}}}
	m := newTestMonitor(fake)

	fake.driversErr = errors.New("network down")
	m.RefreshDrivers(context.Background(), testSession())

	if got := m.Drivers(); len(got) != 1 {
		t.Errorf("driver snapshot dropped on best-effort failure: %v", got)
	}
	if view := m.ActiveView(); view.Error != "" {
		t.Errorf("driver failure must not reach the order screen, got %q", view.Error)
	}
}

func TestCancel_DeclinedIssuesNoCall(t *testing.T) {
	fake := &fakeDispatch{orders: []model.Order{routeOrder(5, model.OrderStatusRequested)}}
	m := newTestMonitor(fake)

	cancelled, err := m.Cancel(context.Background(), testSession(), 5, false)
	if err != nil || cancelled {
		t.Fatalf("declined cancel: cancelled=%v err=%v", cancelled, err)
	}
	if fake.cancelCalls != 0 {
		t.Errorf("declined cancel issued %d network calls", fake.cancelCalls)
	}
	if len(m.ActiveView().Items) != 1 {
		t.Error("declined cancel changed the list")
	}
}

func TestCancel_RemovesOrderAndClearsSelection(t *testing.T) {
	fake := &fakeDispatch{orders: []model.Order{
		routeOrder(5, model.OrderStatusRequested),
		routeOrder(4, model.OrderStatusRequested),
	}}
	m := newTestMonitor(fake)
	if _, err := m.ToggleSelect(5); err != nil {
		t.Fatal(err)
	}

	cancelled, err := m.Cancel(context.Background(), testSession(), 5, true)
	if err != nil || !cancelled {
		t.Fatalf("cancel: cancelled=%v err=%v", cancelled, err)
	}

	view := m.ActiveView()
	if len(view.Items) != 1 || view.Items[0].ID != 4 {
		t.Errorf("list after cancel = %v", view.Items)
	}
	if view.SelectedID != 0 {
		t.Errorf("selection not cleared, still %d", view.SelectedID)
	}
}

func TestCancel_FailureLeavesListUnchanged(t *testing.T) {
	fake := &fakeDispatch{orders: []model.Order{routeOrder(5, model.OrderStatusRequested)}}
	m := newTestMonitor(fake)
	fake.cancelErr = errors.New("order already completed")

	if _, err := m.Cancel(context.Background(), testSession(), 5, true); err == nil {
		t.Fatal("expected cancel error")
	}
	if len(m.ActiveView().Items) != 1 {
		t.Error("failed cancel changed the list")
	}
}

func TestAssign_RejectsNonNumericInput(t *testing.T) {
	fake := &fakeDispatch{orders: []model.Order{routeOrder(5, model.OrderStatusRequested)}}
	m := newTestMonitor(fake)

	_, err := m.Assign(context.Background(), testSession(), 5, "abc")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if fake.assignCalls != 0 {
		t.Errorf("invalid input issued %d network calls", fake.assignCalls)
	}
}

func TestAssign_OnlyRequestedOrders(t *testing.T) {
	fake := &fakeDispatch{orders: []model.Order{routeOrder(5, model.OrderStatusInProgress)}}
	m := newTestMonitor(fake)

	_, err := m.Assign(context.Background(), testSession(), 5, "12")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if fake.assignCalls != 0 {
		t.Error("non-REQUESTED assign reached the network")
	}
}

func TestAssign_ReplacesOrderInPlace(t *testing.T) {
	fake := &fakeDispatch{orders: []model.Order{
		routeOrder(6, model.OrderStatusAccepted),
		routeOrder(5, model.OrderStatusRequested),
	}}
	updated := routeOrder(5, model.OrderStatusAccepted)
	updated.Driver = &model.DriverBrief{ID: 12, FullName: "Petro"}
	fake.assignResult = &updated

	m := newTestMonitor(fake)
	if _, err := m.ToggleSelect(5); err != nil {
		t.Fatal(err)
	}

	got, err := m.Assign(context.Background(), testSession(), 5, " 12 ")
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasDriver() || got.Status != model.OrderStatusAccepted {
		t.Fatalf("updated order = %+v", got)
	}

	view := m.ActiveView()
	if view.Items[1].Driver == nil || view.Items[1].Driver.ID != 12 {
		t.Errorf("order not replaced in place: %+v", view.Items[1])
	}
	if view.SelectedID != 5 {
		t.Errorf("selection lost on assign, SelectedID = %d", view.SelectedID)
	}
}

func TestAssign_FailureIsNotOptimistic(t *testing.T) {
	fake := &fakeDispatch{orders: []model.Order{routeOrder(5, model.OrderStatusRequested)}}
	fake.assignErr = errors.New("driver already on an order")
	m := newTestMonitor(fake)

	if _, err := m.Assign(context.Background(), testSession(), 5, "12"); err == nil {
		t.Fatal("expected assign error")
	}
	view := m.ActiveView()
	if view.Items[0].Status != model.OrderStatusRequested || view.Items[0].Driver != nil {
		t.Errorf("failed assign mutated the order: %+v", view.Items[0])
	}
}

func TestToggleSelect_UnknownOrder(t *testing.T) {
	m := newTestMonitor(&fakeDispatch{})
	if _, err := m.ToggleSelect(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMapSnapshot_DriversWhenNothingSelected(t *testing.T) {
	fake := &fakeDispatch{
		orders:  []model.Order{routeOrder(5, model.OrderStatusRequested)},
		drivers: []model.Driver{{ID: 3, FullName: "Ivan", Latitude: 50.4, Longitude: 30.5}},
	}
	m := newTestMonitor(fake)

	view := m.MapSnapshot()
	if len(view.Markers) != 1 || view.Markers[0].Kind != geo.MarkerDriver {
		t.Fatalf("markers = %+v, want one driver marker", view.Markers)
	}
	if view.Route != nil {
		t.Error("route drawn with no selection")
	}
}

func TestMapSnapshot_ViewportOncePerSelectionChange(t *testing.T) {
	fake := &fakeDispatch{
		orders:  []model.Order{routeOrder(5, model.OrderStatusRequested)},
		drivers: []model.Driver{{ID: 3, Latitude: 50.4, Longitude: 30.5}},
	}
	m := newTestMonitor(fake)
	if _, err := m.ToggleSelect(5); err != nil {
		t.Fatal(err)
	}

	first := m.MapSnapshot()
	if first.Viewport == nil {
		t.Fatal("no viewport after selection change")
	}
	if first.Viewport.Padding != geo.FitPadding {
		t.Errorf("padding = %d, want %d", first.Viewport.Padding, geo.FitPadding)
	}
	if len(first.Route) == 0 {
		t.Error("selected order has no route")
	}
	for _, marker := range first.Markers {
		if marker.Kind == geo.MarkerDriver {
			t.Error("driver markers rendered while an order is selected")
		}
	}

	second := m.MapSnapshot()
	if second.Viewport != nil {
		t.Error("viewport re-attached without a selection change")
	}

	// Deselecting reverts to driver markers with no camera move.
	if _, err := m.ToggleSelect(5); err != nil {
		t.Fatal(err)
	}
	third := m.MapSnapshot()
	if third.Viewport != nil {
		t.Error("viewport attached on deselect")
	}
	if len(third.Markers) != 1 || third.Markers[0].Kind != geo.MarkerDriver {
		t.Errorf("markers after deselect = %+v", third.Markers)
	}
}

func TestArchive_SearchGoesUpstream(t *testing.T) {
	fake := &fakeDispatch{archived: []model.Order{
		routeOrder(2, model.OrderStatusCompleted),
	}}
	m := NewMonitor(fake, zerolog.Nop())

	view, err := m.Archive(context.Background(), testSession(), Criteria{Phone: "0991234567"})
	if err != nil {
		t.Fatal(err)
	}
	if fake.searchPhone != "0991234567" {
		t.Errorf("upstream search phone = %q", fake.searchPhone)
	}
	if view.Stats.Completed != 1 {
		t.Errorf("stats = %+v", view.Stats)
	}
}
