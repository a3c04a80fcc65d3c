package geo

import "dispatch-console/internal/model"

// FitPadding is the margin, in screen pixels, requested around a fitted
// viewport. Matches the padding the map widget renders with.
const FitPadding = 50

// Bounds is a rectangular region in coordinate space.
type Bounds struct {
	SouthWest model.LatLng `json:"southWest"`
	NorthEast model.LatLng `json:"northEast"`
}

// Viewport is a request to the map widget to move its camera.
type Viewport struct {
	Bounds  Bounds `json:"bounds"`
	Padding int    `json:"padding"`
}

// BoundsOf returns the smallest region covering every point. Returns false
// for an empty set.
func BoundsOf(points []model.LatLng) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		if p.Lat < b.SouthWest.Lat {
			b.SouthWest.Lat = p.Lat
		}
		if p.Lng < b.SouthWest.Lng {
			b.SouthWest.Lng = p.Lng
		}
		if p.Lat > b.NorthEast.Lat {
			b.NorthEast.Lat = p.Lat
		}
		if p.Lng > b.NorthEast.Lng {
			b.NorthEast.Lng = p.Lng
		}
	}
	return b, true
}

// FitViewport computes the viewport for a newly selected order: the region
// covering origin, destination and every stop that carries coordinates,
// with the fixed padding margin. Orders without both endpoint coordinates
// produce no viewport and the camera stays where it is.
//
// This runs on selection change only, never on a data refresh.
func FitViewport(order model.Order) (*Viewport, bool) {
	if !order.HasCoordinates() {
		return nil, false
	}
	points := []model.LatLng{
		{Lat: order.OriginLat, Lng: order.OriginLng},
		{Lat: order.DestLat, Lng: order.DestLng},
	}
	for _, stop := range order.Stops {
		if stop.Lat != 0 || stop.Lng != 0 {
			points = append(points, model.LatLng{Lat: stop.Lat, Lng: stop.Lng})
		}
	}
	bounds, _ := BoundsOf(points)
	return &Viewport{Bounds: bounds, Padding: FitPadding}, true
}
