package core

import (
	"regexp"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_ValidPrefix(t *testing.T) {
	testCases := []struct {
		name     string
		prefix   string
		expected string
	}{
		{
			name:     "simple prefix",
			prefix:   "evt",
			expected: "evt",
		},
		{
			name:     "uppercase prefix gets lowercased",
			prefix:   "CMD",
			expected: "cmd",
		},
		{
			name:     "prefix with leading/trailing spaces gets trimmed",
			prefix:   "  scan  ",
			expected: "scan",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := NewID(tc.prefix)

			parts := strings.Split(id, "_")
			require.Len(t, parts, 2, "ID should have exactly one underscore separating prefix and ULID")
			assert.Equal(t, tc.expected, parts[0])

			ulidPart := parts[1]
			assert.Len(t, ulidPart, 26, "ULID should be 26 characters long")

			ulidRegex := regexp.MustCompile("^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$")
			assert.True(t, ulidRegex.MatchString(ulidPart), "ULID part should match base32 format")

			_, err := ulid.Parse(ulidPart)
			assert.NoError(t, err)
			assert.True(t, IsValidID(id))
		})
	}
}

func TestNewID_EmptyPrefix_Panics(t *testing.T) {
	for _, prefix := range []string{"", "   ", "\t"} {
		assert.Panics(t, func() { NewID(prefix) }, "prefix %q should panic", prefix)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewID("evt")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("evt"))
	assert.False(t, IsValidID("evt_"))
	assert.False(t, IsValidID("_01G0EZ1XTM37C5X11SQTDNCTM1"))
	assert.False(t, IsValidID("evt_not-a-ulid"))
	assert.True(t, IsValidID("evt_01G0EZ1XTM37C5X11SQTDNCTM1"))
}
