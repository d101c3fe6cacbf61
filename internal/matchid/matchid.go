// Package matchid generates opaque match identifiers.
package matchid

import (
	"strings"

	"github.com/google/uuid"
)

const prefix = "poker_"

// New returns a fresh match id of the form "poker_1a2b3c4d".
func New() string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Generator produces match ids; injectable so tests can fix them.
type Generator func() string
