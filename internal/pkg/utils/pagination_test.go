package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, Page{Limit: DefaultLimit, Offset: 0}, NormalizePage(0, -5))
	assert.Equal(t, Page{Limit: MaxLimit, Offset: 10}, NormalizePage(1000, 10))
	assert.Equal(t, Page{Limit: 5, Offset: 2}, NormalizePage(5, 2))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, bad)
	}
}
