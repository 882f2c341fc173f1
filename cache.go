package lorekeep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultRetention is how long a cache entry survives before the expiration
// sweep removes it, independent of any per-read max age.
const DefaultRetention = 2 * time.Hour

// Params is the argument set of a tool call. It must be JSON-serializable.
//
// A nil Params and an empty Params produce different cache keys: nil
// serializes to the empty string, the empty map to "{}".
type Params map[string]any

// CacheService is a durable, expiring store of tool responses keyed by the
// tool name and its parameters. One instance exists per process and is shared
// by all callers.
type CacheService interface {
	// Get sweeps expired entries and then looks up the entry for tool and
	// params, decoding its payload into v. A positive maxAge additionally
	// rejects entries created more than maxAge ago.
	// Returns false on a miss or when the payload cannot be decoded into v.
	Get(ctx context.Context, tool string, params Params, maxAge time.Duration, v any) (bool, error)

	// Set stores v for tool and params, replacing any existing entry.
	Set(ctx context.Context, tool string, params Params, v any) error

	// Sweep deletes entries older than DefaultRetention and reports how many
	// were removed.
	Sweep(ctx context.Context) (int64, error)

	// Reset deletes every entry.
	Reset(ctx context.Context) error
}

// CacheKey derives the canonical key for a tool call. Params are serialized
// as compact JSON with sorted keys, appended to the tool name, and hashed
// into a fixed-length hex digest.
func CacheKey(tool string, params Params) (string, error) {
	serialized, err := canonicalParams(params)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(tool+serialized)), nil
}

// canonicalParams renders params as compact JSON. encoding/json sorts map
// keys at every level, which makes the output independent of insertion order.
func canonicalParams(params Params) (string, error) {
	if params == nil {
		return "", nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(params)); err != nil {
		return "", Errorf(EINVALID, "params not serializable: %v", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
