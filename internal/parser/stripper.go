package parser

import (
	"strings"

	"github.com/toyz/asyncwrap/internal/annotations"
)

// StripMarkers removes every wrap marker line from the source text and
// leaves everything else byte-for-byte untouched. Companion annotations
// stay in place so regeneration remains possible. Stripping a marker-free
// source is a no-op, which makes the operation idempotent.
func StripMarkers(source string) string {
	lines := strings.Split(source, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if annotations.IsMarker(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// HasMarkers reports whether the source contains any wrap marker line
func HasMarkers(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		if annotations.IsMarker(line) {
			return true
		}
	}
	return false
}
