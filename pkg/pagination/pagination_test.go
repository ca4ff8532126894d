package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	first := Paginate(items, &PaginationParams{Page: 1, PerPage: 2})
	assert.Equal(t, []int{1, 2}, first.Items)
	assert.Equal(t, 3, first.Pagination.TotalPages)
	assert.True(t, first.Pagination.HasNext)
	assert.False(t, first.Pagination.HasPrev)

	last := Paginate(items, &PaginationParams{Page: 3, PerPage: 2})
	assert.Equal(t, []int{5}, last.Items)
	assert.False(t, last.Pagination.HasNext)
	assert.True(t, last.Pagination.HasPrev)

	beyond := Paginate(items, &PaginationParams{Page: 9, PerPage: 2})
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(5), beyond.Pagination.Total)
}

func TestPaginate_Defaults(t *testing.T) {
	res := Paginate([]string{"a"}, nil)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	assert.Equal(t, 15, res.Pagination.PerPage)

	params := &PaginationParams{Page: -1, PerPage: 1000}
	params.Validate()
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 100, params.PerPage)
}
