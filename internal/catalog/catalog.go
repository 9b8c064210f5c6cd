package catalog

import (
	"SchoolPick/entity"
)

// Catalog holds the fixed school and reason lists. Display order of the
// schools is the tie-break order of every leaderboard.
type Catalog struct {
	schools []entity.School
	index   map[string]int
	reasons []entity.Reason
}

func New(schools []entity.School, reasons []entity.Reason) *Catalog {
	c := &Catalog{
		schools: make([]entity.School, len(schools)),
		index:   make(map[string]int, len(schools)),
		reasons: append([]entity.Reason(nil), reasons...),
	}
	for i, s := range schools {
		s.Order = i
		c.schools[i] = s
		c.index[s.Code] = i
	}
	return c
}

// Default returns the Gwangmyeong high school catalog.
func Default() *Catalog {
	return New(gwangmyeongSchools, reasons)
}

// Schools returns a copy of the schools in display order.
func (c *Catalog) Schools() []entity.School {
	return append([]entity.School(nil), c.schools...)
}

func (c *Catalog) School(code string) (entity.School, bool) {
	i, ok := c.index[code]
	if !ok {
		return entity.School{}, false
	}
	return c.schools[i], true
}

func (c *Catalog) HasSchool(code string) bool {
	_, ok := c.index[code]
	return ok
}

// Order is the display index of a school, or -1 for unknown codes.
func (c *Catalog) Order(code string) int {
	i, ok := c.index[code]
	if !ok {
		return -1
	}
	return i
}

// Reasons returns the selectable reasons, without the aggregate bucket.
func (c *Catalog) Reasons() []entity.Reason {
	return append([]entity.Reason(nil), c.reasons...)
}

// Buckets returns the aggregate bucket followed by every reason.
func (c *Catalog) Buckets() []entity.Reason {
	return append([]entity.Reason{{Code: entity.ReasonAll, Label: allLabel}}, c.reasons...)
}

// HasReason reports whether code is a selectable reason. The aggregate
// bucket is not one.
func (c *Catalog) HasReason(code string) bool {
	for _, r := range c.reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}

// HasBucket accepts selectable reasons and the aggregate bucket.
func (c *Catalog) HasBucket(code string) bool {
	return code == entity.ReasonAll || c.HasReason(code)
}
