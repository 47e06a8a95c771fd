package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTitle(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		names []string
		want  string
	}{
		{nil, "Bill - Mar 5, 2024"},
		{[]string{"Bob"}, "Split with Bob"},
		{[]string{"Bob", "Carol", "Dan"}, "Split with Bob, Carol, Dan"},
		{[]string{"Bob", "Carol", "Dan", "Eve", "Frank"}, "Split with Bob, Carol and 3 others"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, generateTitle(tt.names, now))
	}
}
