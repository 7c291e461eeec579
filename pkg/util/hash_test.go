package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "simple string",
			input:    "hello",
			expected: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HashAPIKey(tt.input))
		})
	}
}

func TestHashAPIKey_Consistency(t *testing.T) {
	key := "tv_app_wp-3f9c2e"
	assert.Equal(t, HashAPIKey(key), HashAPIKey(key))
	assert.NotEqual(t, HashAPIKey(key), HashAPIKey(key+"x"))
	assert.Len(t, HashAPIKey(key), 64)
}
