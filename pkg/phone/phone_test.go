package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		phone     string
		region    string
		wantValid bool
		wantE164  string
		wantError bool
	}{
		{
			name:      "Valid US number with country code",
			phone:     "+1 (202) 456-1111",
			region:    "US",
			wantValid: true,
			wantE164:  "+12024561111",
		},
		{
			name:      "Valid US number plain format",
			phone:     "2024561111",
			region:    "",
			wantValid: true,
			wantE164:  "+12024561111",
		},
		{
			name:      "Invalid but parseable number",
			phone:     "123",
			region:    "US",
			wantValid: false,
		},
		{
			name:      "Empty input",
			phone:     "  ",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.phone, tt.region)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, info.IsValid)
			if tt.wantE164 != "" {
				assert.Equal(t, tt.wantE164, info.E164Format)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("Success - valid number gets national format", func(t *testing.T) {
		assert.Equal(t, "(202) 456-1111", Normalize("2024561111"))
	})

	t.Run("Success - invalid number returned verbatim", func(t *testing.T) {
		assert.Equal(t, "call after 5pm", Normalize("call after 5pm"))
		assert.Equal(t, "", Normalize(""))
	})
}
