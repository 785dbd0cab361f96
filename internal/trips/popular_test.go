package trips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopular_DefaultLimit(t *testing.T) {
	got := Popular(0)

	require.Len(t, got, DefaultPopularLimit)
	assert.Equal(t, "New York (JFK)", got[0].From)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Popularity, got[i].Popularity)
	}
}

func TestPopular_ClampsToCatalogSize(t *testing.T) {
	got := Popular(100)
	assert.Len(t, got, len(catalog))
}

func TestPopular_DoesNotMutateCatalog(t *testing.T) {
	before := catalog[0].ID
	_ = Popular(3)
	assert.Equal(t, before, catalog[0].ID)
}
