package model

import "time"

type OrderStatus string

const (
	OrderStatusRequested  OrderStatus = "REQUESTED"
	OrderStatusAccepted   OrderStatus = "ACCEPTED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodCash PaymentMethod = "CASH"
)

// ClientBrief is the nested client record as the dispatch backend emits it.
type ClientBrief struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

type DriverBrief struct {
	ID             int64  `json:"id"`
	FullName       string `json:"fullName"`
	CarPlateNumber string `json:"carPlateNumber"`
}

// Stop is an intermediate waypoint between origin and destination.
type Stop struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Order mirrors the TaxiOrderDto of the upstream dispatch API. Field names
// follow the upstream JSON contract, which uses camelCase.
type Order struct {
	ID            int64         `json:"id"`
	Status        OrderStatus   `json:"status"`
	TariffName    string        `json:"tariffName"`
	Client        ClientBrief   `json:"client"`
	Driver        *DriverBrief  `json:"driver,omitempty"`
	FromAddress   string        `json:"fromAddress"`
	ToAddress     string        `json:"toAddress"`
	OriginLat     float64       `json:"originLat"`
	OriginLng     float64       `json:"originLng"`
	DestLat       float64       `json:"destLat"`
	DestLng       float64       `json:"destLng"`
	Stops         []Stop        `json:"stops,omitempty"`
	Price         float64       `json:"price"`
	AddedValue    float64       `json:"addedValue"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	RoutePolyline string        `json:"googleRoutePolyline,omitempty"`
	Services      []string      `json:"services,omitempty"`
	Comment       string        `json:"comment,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
	DistanceM     int           `json:"distanceMeters"`
}

// Active reports whether the order belongs on the live dispatch screen.
func (o Order) Active() bool {
	switch o.Status {
	case OrderStatusRequested, OrderStatusAccepted, OrderStatusInProgress:
		return true
	}
	return false
}

func (o Order) HasDriver() bool {
	return o.Driver != nil
}

// HasCoordinates reports whether both route endpoints carry coordinates.
// Orders created from plain addresses may not.
func (o Order) HasCoordinates() bool {
	return (o.OriginLat != 0 || o.OriginLng != 0) && (o.DestLat != 0 || o.DestLng != 0)
}

// ConsistentDriver checks the status/driver invariant: a REQUESTED order has
// no driver, an ACCEPTED or IN_PROGRESS order must have one.
func (o Order) ConsistentDriver() bool {
	switch o.Status {
	case OrderStatusRequested:
		return o.Driver == nil
	case OrderStatusAccepted, OrderStatusInProgress:
		return o.Driver != nil
	}
	return true
}
