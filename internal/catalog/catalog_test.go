package catalog

import (
	"SchoolPick/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	schools := c.Schools()
	require.Len(t, schools, 11)
	assert.Equal(t, "gwangmyeong", schools[0].Code)
	assert.Equal(t, "chang", schools[10].Code)

	seen := make(map[string]bool)
	for i, s := range schools {
		assert.False(t, seen[s.Code], "duplicate code %s", s.Code)
		seen[s.Code] = true
		assert.Equal(t, i, s.Order)
		assert.Equal(t, i, c.Order(s.Code))
		assert.NotZero(t, s.Location.Lat)
		assert.NotZero(t, s.Location.Lng)
	}
}

func TestReasons(t *testing.T) {
	c := Default()

	assert.Len(t, c.Reasons(), 7)
	assert.True(t, c.HasReason("traffic"))
	assert.False(t, c.HasReason(entity.ReasonAll))
	assert.True(t, c.HasBucket(entity.ReasonAll))
	assert.False(t, c.HasBucket("weather"))

	buckets := c.Buckets()
	require.Len(t, buckets, 8)
	assert.Equal(t, entity.ReasonAll, buckets[0].Code)
}

func TestLookup(t *testing.T) {
	c := Default()

	s, ok := c.School("soha")
	require.True(t, ok)
	assert.Equal(t, "소하고등학교", s.Name)

	_, ok = c.School("nowhere")
	assert.False(t, ok)
	assert.Equal(t, -1, c.Order("nowhere"))
}

func TestSchoolsReturnsCopy(t *testing.T) {
	c := Default()
	schools := c.Schools()
	schools[0].Code = "changed"
	assert.True(t, c.HasSchool("gwangmyeong"))
}
