package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_LastPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		perPage  int
		expected int
	}{
		{"exact multiple", 40, 10, 4},
		{"partial last page", 42, 10, 5},
		{"empty result", 0, 10, 1},
		{"single row", 1, 15, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := NewPage([]int{}, 1, test.perPage, test.total)
			assert.Equal(t, test.expected, p.LastPage())
		})
	}
}

func TestPage_HasMorePages(t *testing.T) {
	p := NewPage([]string{"a"}, 2, 10, 42)
	assert.True(t, p.HasMorePages())

	last := NewPage([]string{"a"}, 5, 10, 42)
	assert.False(t, last.HasMorePages())
}

func TestNewPage_NormalizesWindow(t *testing.T) {
	p := NewPage([]int{1}, 0, 0, 1)
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 1, p.PerPage())
}
