package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesAreClosedSet(t *testing.T) {
	require.Len(t, Categories, 6)
	seen := make(map[Category]bool)
	for _, info := range Categories {
		assert.NotEmpty(t, info.Title)
		assert.NotEmpty(t, info.Formats)
		assert.False(t, seen[info.Key], "duplicate key %s", info.Key)
		seen[info.Key] = true
	}
}

func TestCategoryByTitle(t *testing.T) {
	info, ok := CategoryByTitle("✍️ Maqola yoki esse")
	require.True(t, ok)
	assert.Equal(t, CategoryEssay, info.Key)
	assert.Equal(t, "doc, docx, pdf", info.Formats)

	_, ok = CategoryByTitle("Maqola yoki esse")
	assert.False(t, ok, "label match must be exact, emoji included")

	_, ok = CategoryByTitle("")
	assert.False(t, ok)
}

func TestCategoryTitleRoundTrip(t *testing.T) {
	for _, info := range Categories {
		assert.Equal(t, info.Title, CategoryTitle(info.Key))
	}
	assert.Equal(t, "unknown", CategoryTitle(Category("unknown")))
}
