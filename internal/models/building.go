package models

// Building is a physical location with exactly one geographic point (WGS 84).
type Building struct {
	ID      int64   `json:"id"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
