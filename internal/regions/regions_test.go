package regions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "1": {
    "name": "Toshkent shahri",
    "districts": {
      "1": {"name": "Chilonzor tumani"},
      "2": {"name": "Yunusobod tumani"},
      "10": {"name": "Bektemir tumani"}
    }
  },
  "2": {
    "name": "Samarqand viloyati",
    "districts": {
      "1": {"name": "Urgut tumani"}
    }
  },
  "10": {
    "name": "Navoiy viloyati",
    "districts": {}
  }
}`

func loadFixture(t *testing.T) Hierarchy {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return NewLoader(path).Load()
}

func TestLoadAndLookup(t *testing.T) {
	h := loadFixture(t)
	require.Len(t, h, 3)

	id, ok := h.RegionByName("Toshkent shahri")
	require.True(t, ok)
	assert.Equal(t, "1", id)

	_, ok = h.RegionByName("toshkent shahri")
	assert.False(t, ok, "region match must be exact")

	did, ok := h.DistrictByName("1", "Yunusobod tumani")
	require.True(t, ok)
	assert.Equal(t, "2", did)

	_, ok = h.DistrictByName("2", "Yunusobod tumani")
	assert.False(t, ok, "district lookup is scoped to its region")
}

func TestNamesFallBackToNA(t *testing.T) {
	h := loadFixture(t)
	assert.Equal(t, "Samarqand viloyati", h.RegionName("2"))
	assert.Equal(t, "N/A", h.RegionName("99"))
	assert.Equal(t, "Urgut tumani", h.DistrictName("2", "1"))
	assert.Equal(t, "N/A", h.DistrictName("2", "9"))
	assert.Equal(t, "N/A", h.DistrictName("99", "1"))
}

func TestNamesOrderedNumerically(t *testing.T) {
	h := loadFixture(t)
	assert.Equal(t, []string{"Toshkent shahri", "Samarqand viloyati", "Navoiy viloyati"}, h.RegionNames())
	assert.Equal(t, []string{"Chilonzor tumani", "Yunusobod tumani", "Bektemir tumani"}, h.DistrictNames("1"))
	assert.Nil(t, h.DistrictNames("99"))
}

func TestLoadMissingFileDegradesToEmpty(t *testing.T) {
	h := NewLoader(filepath.Join(t.TempDir(), "absent.json")).Load()
	assert.Empty(t, h)
	assert.Equal(t, "N/A", h.RegionName("1"))
	assert.Empty(t, h.RegionNames())
}

func TestLoadMalformedFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	h := NewLoader(path).Load()
	assert.Empty(t, h)
}
