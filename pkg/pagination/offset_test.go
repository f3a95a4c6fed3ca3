package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		size  int
		want  int
	}{
		{"empty", 0, 50, 1},
		{"exact", 100, 50, 2},
		{"partial", 101, 50, 3},
		{"single", 3, 50, 1},
		{"invalid size", 10, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.size))
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		n, page    int
		size       int
		start, end int
	}{
		{"first page", 10, 1, 4, 0, 4},
		{"last partial page", 10, 3, 4, 8, 10},
		{"past the end", 10, 5, 4, 10, 10},
		{"invalid page", 10, 0, 4, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.n, tt.page, tt.size)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestHasMore(t *testing.T) {
	assert.True(t, HasMore(1, 2))
	assert.False(t, HasMore(2, 2))
	assert.Equal(t, 100, Offset(3, 50))
}
