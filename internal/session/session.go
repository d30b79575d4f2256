// Package session allocates per-run session identifiers and output
// folders. Every pipeline invocation gets a fresh, collision-free
// identifier so concurrent runs never share an output location.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Session identifies one run and its writable output location.
type Session struct {
	ID  string
	Dir string
}

// idPattern matches the YYYYMMDD_HHMM_xxxx identifier shape. Session
// IDs appear in URL paths and file paths, so anything else is rejected.
var idPattern = regexp.MustCompile(`^[0-9]{8}_[0-9]{4}_[0-9a-f]{4}$`)

// New allocates a session under the given root directory, creating the
// folder. The identifier combines the current time with a short random
// suffix: 20231215_1030_ab12.
func New(root string) (*Session, error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%s_%s",
		now.Format("20060102"),
		now.Format("1504"),
		uuid.New().String()[:4])

	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create session folder: %w", err)
	}

	return &Session{ID: id, Dir: dir}, nil
}

// ValidID reports whether a string is a well-formed session identifier.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
