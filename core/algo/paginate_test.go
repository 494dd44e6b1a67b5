package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		page     int
		size     int
		expected []int
		pages    int
	}{
		{"first page", 1, 3, []int{1, 2, 3}, 3},
		{"middle page", 2, 3, []int{4, 5, 6}, 3},
		{"last partial page", 3, 3, []int{7}, 3},
		{"past the end", 4, 3, []int{}, 3},
		{"page zero", 0, 3, []int{}, 3},
		{"exact fit", 1, 7, items, 1},
		{"no paging", 1, 0, items, 1},
		{"no paging wrong page", 2, 0, []int{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pages := Paginate(items, tt.page, tt.size)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.pages, pages)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got, pages := Paginate([]string{}, 1, 10)
	assert.Empty(t, got)
	assert.Equal(t, 0, pages)

	got, pages = Paginate[string](nil, 1, 0)
	assert.Empty(t, got)
	assert.Equal(t, 0, pages)
}

func TestLimit(t *testing.T) {
	items := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, Limit(items, 2))
	assert.Equal(t, items, Limit(items, 5))
	assert.Equal(t, items, Limit(items, 0))
}
