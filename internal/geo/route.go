// Package geo derives the map view for the dispatch console: route paths,
// typed markers and the viewport to fit around a selected order.
package geo

import (
	"github.com/twpayne/go-polyline"

	"dispatch-console/internal/model"
)

// RoutePath returns the polyline to draw for an order.
//
// When the order carries an encoded route polyline the decoded geometry is
// authoritative, even if coordinates are also present. Without one, the path
// is the straight-line approximation origin → stops (in listed order) →
// destination. Orders with neither a polyline nor endpoint coordinates get
// no route at all.
func RoutePath(order model.Order) []model.LatLng {
	if order.RoutePolyline != "" {
		if path := decodePolyline(order.RoutePolyline); path != nil {
			return path
		}
	}
	if !order.HasCoordinates() {
		return nil
	}

	path := make([]model.LatLng, 0, len(order.Stops)+2)
	path = append(path, model.LatLng{Lat: order.OriginLat, Lng: order.OriginLng})
	for _, stop := range order.Stops {
		path = append(path, model.LatLng{Lat: stop.Lat, Lng: stop.Lng})
	}
	path = append(path, model.LatLng{Lat: order.DestLat, Lng: order.DestLng})
	return path
}

func decodePolyline(encoded string) []model.LatLng {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil || len(coords) == 0 {
		// Malformed geometry from the routing provider; callers fall back
		// to the straight-line path.
		return nil
	}
	path := make([]model.LatLng, 0, len(coords))
	for _, c := range coords {
		path = append(path, model.LatLng{Lat: c[0], Lng: c[1]})
	}
	return path
}
