package entity

// School is a catalog entry. Schools are fixed at build time and never
// created or removed at runtime.
type School struct {
	Code        string   `json:"code" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Location    Location `json:"location" bson:"location"`
	Description string   `json:"description" bson:"description"`
	Link        string   `json:"link" bson:"link"`
	Order       int      `json:"order" bson:"order"`
}

// NewSchool creates a new School entity.
func NewSchool(code, name string, lat, lng float64, description, link string) School {
	return School{
		Code:        code,
		Name:        name,
		Location:    Location{Lat: lat, Lng: lng},
		Description: description,
		Link:        link,
	}
}
