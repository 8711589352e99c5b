package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddressValidation(t *testing.T) {
	tests := []struct {
		name    string
		street  string
		city    string
		zipCode string
		country string
		wantErr bool
	}{
		{"complete", "1 Main St", "Springfield", "12345", "US", false},
		{"missing street", "", "Springfield", "12345", "US", true},
		{"missing city", "1 Main St", "", "12345", "US", true},
		{"missing zip", "1 Main St", "Springfield", "", "US", true},
		{"missing country", "1 Main St", "Springfield", "12345", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NewAddress(tt.street, tt.city, tt.zipCode, tt.country)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				assert.True(t, addr.IsZero())
			} else {
				require.NoError(t, err)
				assert.False(t, addr.IsZero())
			}
		})
	}
}

func TestAddressEquality(t *testing.T) {
	a, err := NewAddress("1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	b, err := NewAddress("1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	c, err := NewAddress("2 Side St", "Springfield", "12345", "US")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals("not an address"))
}
