package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFromGenres(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want Category
	}{
		{"action alone", []int{GenreAction}, CategoryAction},
		{"action beats drama", []int{GenreDrama, GenreAction}, CategoryAction},
		{"action beats everything", []int{GenreComedy, 99, GenreDrama, GenreAction}, CategoryAction},
		{"drama beats comedy", []int{GenreComedy, GenreDrama}, CategoryDrama},
		{"comedy", []int{GenreComedy}, CategoryComedy},
		{"unknown genres fall back to comedy", []int{99, 10749}, CategoryComedy},
		{"no genres", nil, CategoryComedy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFromGenres(tt.ids))
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)

		id, ok := c.GenreID()
		assert.True(t, ok)
		assert.NotZero(t, id)
	}

	_, err := ParseCategory("horror")
	assert.Error(t, err)

	_, ok := Category("horror").GenreID()
	assert.False(t, ok)
}

func TestFilmYear(t *testing.T) {
	assert.Equal(t, 2024, Film{ReleaseDate: "2024-03-01"}.Year())
	assert.Equal(t, 0, Film{ReleaseDate: ""}.Year())
	assert.Equal(t, 0, Film{ReleaseDate: "soon"}.Year())
}

func TestFilmShortOverview(t *testing.T) {
	f := Film{Overview: "short"}
	assert.Equal(t, "short", f.ShortOverview(100))

	f.Overview = "abcdefghij"
	assert.Equal(t, "abcde...", f.ShortOverview(5))

	f.Overview = "ééééé"
	assert.Equal(t, "éé...", f.ShortOverview(2))
}
