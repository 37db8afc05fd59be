package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, limit, offset := normalizePage(0, 0, 20)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	page, limit, offset = normalizePage(3, 10, 20)
	assert.Equal(t, 3, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)

	// Oversized limits fall back to the default.
	_, limit, _ = normalizePage(1, 500, 20)
	assert.Equal(t, 20, limit)

	page, _, _ = normalizePage(-5, 10, 20)
	assert.Equal(t, 1, page)
}

func TestPaginate(t *testing.T) {
	p := paginate(2, 10, 25)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, int64(3), p.TotalPages)

	p = paginate(1, 10, 30)
	assert.Equal(t, int64(3), p.TotalPages)

	p = paginate(1, 10, 0)
	assert.Equal(t, int64(0), p.TotalPages)
}
