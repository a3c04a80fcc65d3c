package geo

import (
	"fmt"

	"dispatch-console/internal/model"
)

type MarkerKind string

const (
	MarkerDriver      MarkerKind = "driver"
	MarkerOrigin      MarkerKind = "origin"
	MarkerDestination MarkerKind = "destination"
	MarkerWaypoint    MarkerKind = "waypoint"
)

// Marker is one pin on the map. Kind selects the icon, Popup is the text
// shown when the pin is clicked.
type Marker struct {
	Kind     MarkerKind   `json:"kind"`
	Position model.LatLng `json:"position"`
	Popup    string       `json:"popup"`
}

// MapView is everything the map widget needs for one render: the markers,
// the route line (when an order is selected) and an optional camera move.
// The Viewport is attached by the console only on selection change, so most
// renders carry none and the operator can pan freely between refreshes.
type MapView struct {
	Markers  []Marker       `json:"markers"`
	Route    []model.LatLng `json:"route,omitempty"`
	Viewport *Viewport      `json:"viewport,omitempty"`
}

// BuildMapView renders either the online-driver markers (no selection) or
// the selected order's route with origin/stop/destination markers. Driver
// pins are suppressed while an order is selected.
func BuildMapView(drivers []model.Driver, selected *model.Order) MapView {
	if selected == nil {
		markers := make([]Marker, 0, len(drivers))
		for _, d := range drivers {
			markers = append(markers, Marker{
				Kind:     MarkerDriver,
				Position: model.LatLng{Lat: d.Latitude, Lng: d.Longitude},
				Popup:    fmt.Sprintf("ID: %d %s", d.ID, d.FullName),
			})
		}
		return MapView{Markers: markers}
	}

	view := MapView{Route: RoutePath(*selected)}

	if selected.HasCoordinates() {
		view.Markers = append(view.Markers, Marker{
			Kind:     MarkerOrigin,
			Position: model.LatLng{Lat: selected.OriginLat, Lng: selected.OriginLng},
			Popup:    selected.FromAddress,
		})
		for i, stop := range selected.Stops {
			view.Markers = append(view.Markers, Marker{
				Kind:     MarkerWaypoint,
				Position: model.LatLng{Lat: stop.Lat, Lng: stop.Lng},
				Popup:    fmt.Sprintf("Stop #%d: %s", i+1, stop.Address),
			})
		}
		view.Markers = append(view.Markers, Marker{
			Kind:     MarkerDestination,
			Position: model.LatLng{Lat: selected.DestLat, Lng: selected.DestLng},
			Popup:    selected.ToAddress,
		})
	}

	return view
}
