package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/domains", nil)
	p := ParsePagination(r)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Empty(t, p.Cursor)
}

func TestParsePagination_CustomValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/domains?limit=25&cursor=example.com", nil)
	p := ParsePagination(r)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, "example.com", p.Cursor)
}

func TestParsePagination_ExceedsMax(t *testing.T) {
	r := httptest.NewRequest("GET", "/domains?limit=500", nil)
	p := ParsePagination(r)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestParsePagination_InvalidLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/domains?limit=abc", nil)
	p := ParsePagination(r)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParsePagination_ZeroLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/domains?limit=0", nil)
	p := ParsePagination(r)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestPagination_CursorID(t *testing.T) {
	id, err := Pagination{}.CursorID()
	require.NoError(t, err)
	assert.Zero(t, id)

	id, err = Pagination{Cursor: "17"}.CursorID()
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	_, err = Pagination{Cursor: "abc"}.CursorID()
	assert.Error(t, err)

	_, err = Pagination{Cursor: "-1"}.CursorID()
	assert.Error(t, err)
}
