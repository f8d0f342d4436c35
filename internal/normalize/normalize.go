// Package normalize repairs loosely-typed parsed values up to the minimum
// valid shape of a domain record. Every function here is total: whatever the
// extractor produced, be it a well-formed object, a fragment, or nil, the
// caller gets back a structurally valid record synthesized from request
// context when necessary. Each normalizer also reports whether it had to
// inject defaults so the caller can surface that in response metadata.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Context carries the request parameters a normalizer templates defaults
// from. Only the fields relevant to the variant being normalized need to be
// set.
type Context struct {
	Topic      string
	Difficulty string
	Duration   string
	Count      int

	ModuleID          string
	ModuleName        string
	ModuleDescription string

	DurationMinutes int
	PersonaID       string

	IncludeSolutions bool
}

// ID returns a synthetic identifier of the form "kind_3f2a9c1d". IDs are
// fresh per call; nothing in the system requires them to be stable across
// requests.
func ID(kind string) string {
	return fmt.Sprintf("%s_%s", kind, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Timestamp returns the shared wall-clock format used in generated records.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// asObject coerces v to a mapping, reporting whether it was one.
func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return map[string]any{}, false
	}
	return obj, true
}

// str returns obj[key] when it is a non-empty string.
func str(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	return s, ok && s != ""
}

// setDefaultStr fills obj[key] with fallback unless it already holds a
// non-empty string. Reports whether a default was injected.
func setDefaultStr(obj map[string]any, key, fallback string) bool {
	if _, ok := str(obj, key); ok {
		return false
	}
	obj[key] = fallback
	return true
}

// setDefault fills obj[key] with fallback when the key is absent.
func setDefault(obj map[string]any, key string, fallback any) bool {
	if _, ok := obj[key]; ok {
		return false
	}
	obj[key] = fallback
	return true
}

// list returns obj[key] as a slice, or nil when it is anything else.
func list(obj map[string]any, key string) []any {
	l, _ := obj[key].([]any)
	return l
}

// ensureList guarantees obj[key] is a slice, replacing non-slice values.
func ensureList(obj map[string]any, key string) []any {
	if l, ok := obj[key].([]any); ok {
		return l
	}
	obj[key] = []any{}
	return nil
}

// intOr returns obj[key] as an int when it is numeric, else fallback.
// JSON numbers decode as float64, so both are accepted.
func intOr(obj map[string]any, key string, fallback int) int {
	switch n := obj[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return fallback
}
