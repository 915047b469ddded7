package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewCaseID mints a stable case identifier, shared by all revisions of the
// same case.
func NewCaseID() string {
	return "case-" + hex(12)
}

// NewSourceID mints a source identifier. The embedded date helps operators
// eyeball when a source first appeared.
func NewSourceID() string {
	return fmt.Sprintf("source:%s:%s", time.Now().Format("20060102"), hex(8))
}

// NewEntityID mints a registry identifier for an entity.
func NewEntityID() string {
	return "entity-" + hex(12)
}

func hex(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
