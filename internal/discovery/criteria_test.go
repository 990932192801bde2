package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilterCriteria(t *testing.T) {
	c := DefaultFilterCriteria()

	assert.Equal(t, 18, c.MinAge)
	assert.Equal(t, 65, c.MaxAge)
	assert.Equal(t, float64(100), c.MaxDistanceMiles)
	assert.False(t, c.HasActiveFilters())
	assert.Equal(t, 0, c.ActiveFilterCount())
	require.NoError(t, c.Validate())
}

func TestFilterCriteriaValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FilterCriteria)
		wantErr error
	}{
		{"min over max age", func(c *FilterCriteria) { c.MinAge = 40; c.MaxAge = 30 }, ErrInvalidAgeRange},
		{"underage min", func(c *FilterCriteria) { c.MinAge = 17 }, ErrInvalidAgeRange},
		{"inverted height", func(c *FilterCriteria) {
			lo, hi := 190, 160
			c.MinHeightCM, c.MaxHeightCM = &lo, &hi
		}, ErrInvalidHeightRange},
		{"negative distance", func(c *FilterCriteria) { c.MaxDistanceMiles = -1 }, ErrInvalidMaxDistance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultFilterCriteria()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), tt.wantErr)
		})
	}
}

func TestFilterCriteriaSetters(t *testing.T) {
	c := DefaultFilterCriteria()

	assert.ErrorIs(t, c.SetAgeRange(30, 25), ErrInvalidAgeRange)
	assert.Equal(t, 18, c.MinAge, "failed setter must not mutate")

	require.NoError(t, c.SetAgeRange(25, 35))
	assert.Equal(t, 25, c.MinAge)
	assert.Equal(t, 35, c.MaxAge)

	assert.ErrorIs(t, c.SetMaxDistance(0), ErrInvalidMaxDistance)
	require.NoError(t, c.SetMaxDistance(10))
	assert.Equal(t, float64(10), c.MaxDistanceMiles)
}

func TestFilterCriteriaActiveFilterCount(t *testing.T) {
	c := DefaultFilterCriteria()
	c.VerifiedOnly = true
	c.Platforms = []string{"pc", "switch"}
	c.MaxDistanceMiles = 25

	assert.Equal(t, 3, c.ActiveFilterCount())
	assert.True(t, c.HasActiveFilters())

	c.Reset()
	assert.Equal(t, 0, c.ActiveFilterCount())
	assert.Equal(t, float64(100), c.MaxDistanceMiles)
}

func TestFilterCriteriaSummary(t *testing.T) {
	c := DefaultFilterCriteria()
	assert.Equal(t, "Ages 18-65", c.Summary())

	require.NoError(t, c.SetAgeRange(21, 30))
	require.NoError(t, c.SetMaxDistance(25))
	c.VerifiedOnly = true
	c.Genres = []string{"rpg", "fps", "strategy"}

	summary := c.Summary()
	assert.Contains(t, summary, "Ages 21-30")
	assert.Contains(t, summary, "within 25 mi")
	assert.Contains(t, summary, "verified only")
	assert.Contains(t, summary, "genres (3)")
}

func TestFilterCriteriaCloneIsDeep(t *testing.T) {
	c := DefaultFilterCriteria()
	c.Platforms = []string{"pc"}
	h := 170
	c.MinHeightCM = &h

	clone := c.Clone()
	clone.Platforms[0] = "xbox"
	*clone.MinHeightCM = 180

	assert.Equal(t, "pc", c.Platforms[0])
	assert.Equal(t, 170, *c.MinHeightCM)
}

func TestFilterCriteriaFingerprint(t *testing.T) {
	a := DefaultFilterCriteria()
	a.Platforms = []string{"pc", "switch"}
	a.VerifiedOnly = true

	b := DefaultFilterCriteria()
	b.Platforms = []string{"switch", "pc"} // same set, different order
	b.VerifiedOnly = true

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.OnlineOnly = true
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
