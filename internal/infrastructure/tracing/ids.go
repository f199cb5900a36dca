package tracing

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Id prefixes keep trace and span ids apart in logs.
const (
	TracePrefix = "req"
	SpanPrefix  = "span"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// newID returns prefix_ULID. Ids from one process sort by creation time.
func newID(prefix string) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return prefix + "_" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ParseID splits a generated id into its prefix and creation time.
func ParseID(id string) (prefix string, created time.Time, err error) {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '_' {
			prefix, id = id[:i], id[i+1:]
			break
		}
	}
	parsed, err := ulid.Parse(id)
	if err != nil {
		return "", time.Time{}, err
	}
	return prefix, ulid.Time(parsed.Time()), nil
}
