package entity

import "SchoolPick/internal/lib/validate"

// Point is a coordinate as sent by the client. Both parts are pointers so
// a missing value is told apart from zero.
type Point struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

func (p Point) Location() Location {
	return Location{Lat: *p.Lat, Lng: *p.Lng}
}

type DirectionsDestination struct {
	SchoolCode string `json:"schoolCode" validate:"required"`
	Location   Point  `json:"location"`
}

// DirectionsQuery is decoded from the origin and destinations query
// parameters of the directions proxy.
type DirectionsQuery struct {
	Origin       Point                   `json:"origin"`
	Destinations []DirectionsDestination `json:"destinations" validate:"required,min=1,dive"`
}

func (q *DirectionsQuery) Validate() error {
	return validate.Struct(q)
}
