package shared

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: 0, PageSize: 500}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.NotNil(t, f.Filters)

	f = Filter{Page: 3, PageSize: 0}.Normalize()
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, 40, f.Offset())
}

func TestFilter_NormalizeCapsPage(t *testing.T) {
	f := Filter{Page: math.MaxInt, PageSize: MaxPageSize}.Normalize()
	assert.Equal(t, MaxPage, f.Page)
	assert.Positive(t, f.Offset())
}

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter()
	f.Page = 2
	f = f.Normalize()
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)
	assert.Equal(t, "desc", f.OrderDir)
	assert.Equal(t, DefaultPageSize, f.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPaginated([]int{}, 0, 1, 20)
	assert.Equal(t, 0, p.TotalPages)
}
