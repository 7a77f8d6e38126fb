package core

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID with the specified prefix.
// The resulting ID follows the format: prefix_ULID
// Example: NewID("evt") returns "evt_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	if strings.TrimSpace(prefix) == "" {
		panic("Prefix cannot be empty")
	}

	cleanPrefix := strings.TrimSpace(strings.ToLower(prefix))
	id := ulid.Make()

	return fmt.Sprintf("%s_%s", cleanPrefix, id.String())
}

// IsValidID checks that id has the prefix_ULID shape produced by NewID
func IsValidID(id string) bool {
	idx := strings.LastIndex(id, "_")
	if idx <= 0 || idx == len(id)-1 {
		return false
	}
	_, err := ulid.ParseStrict(id[idx+1:])
	return err == nil
}
