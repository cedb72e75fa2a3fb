package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"$1,299.50", "1299.5", true},
		{"€12,50", "12.5", true},
		{"1.299,50 EUR", "1299.5", true},
		{"Rp 15.000.000", "15000000", true},
		{"1,000", "1000", true},
		{"42", "42", true},
		{"USD 9.99", "9.99", true},
		{"free", "0", false},
		{"", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParsePrice(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
