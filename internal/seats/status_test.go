package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		wantErr  bool
	}{
		{"AVAILABLE", StatusAvailable, false},
		{"locked", StatusLocked, false},
		{"Unavailable", StatusUnavailable, false},
		{"SOLD", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		input    string
		expected Class
		wantErr  bool
	}{
		{"ECONOMY", ClassEconomy, false},
		{"business", ClassBusiness, false},
		{"First", ClassFirst, false},
		{"PREMIUM", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			class, err := ParseClass(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, class)
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusAvailable.IsValid())
	assert.True(t, StatusLocked.IsValid())
	assert.True(t, StatusUnavailable.IsValid())
	assert.False(t, Status("BOOKED").IsValid())
}
