package model

// Driver is an online driver as served by GET /admin/drivers/online.
// Coordinates are meaningful only while the driver is online.
type Driver struct {
	ID        int64   `json:"id"`
	FullName  string  `json:"fullName"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LatLng is a WGS-84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
