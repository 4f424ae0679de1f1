package journal

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID mints a lexically sortable run identifier carrying the run's start
// time, so sorting by id matches sorting by started_at. Monotonic entropy
// keeps ids ordered even when runs share a millisecond. A zero start time
// falls back to the current wall clock; an id stamped at the epoch would sort
// before every real run.
func NewRunID(now time.Time) (string, error) {
	if now.IsZero() {
		now = time.Now()
	}
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(now.UTC()), entropy)
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("generate run id: insufficient entropy")
		}
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}
