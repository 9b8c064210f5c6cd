package entity

// DistanceRecord is computed per ranking refresh and never persisted.
// Meters is the canonical unit for every distance source.
type DistanceRecord struct {
	SchoolCode      string  `json:"school_code"`
	Meters          float64 `json:"meters"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	Route           string  `json:"route,omitempty"`
	Label           string  `json:"label,omitempty"`
	Resolved        bool    `json:"resolved"`
}
