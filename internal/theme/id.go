package theme

import (
	"strings"

	"github.com/google/uuid"
)

// newUniqueID prefixes a random id with the theme name so ids stay readable in
// asset handles. Two instances of the same variant never share an id.
func newUniqueID(name string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	prefix := strings.Join(strings.Fields(name), "_")
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
