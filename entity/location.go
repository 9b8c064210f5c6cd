package entity

import "fmt"

type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// LngLat formats the point the way the directions provider expects it.
func (l Location) LngLat() string {
	return fmt.Sprintf("%v,%v", l.Lng, l.Lat)
}
