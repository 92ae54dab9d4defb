// internal/utils/slug.go
package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify converts a display name into a URL-safe slug: lowercase,
// letters/digits kept, runs of whitespace and hyphens collapsed into a
// single hyphen, everything else dropped. An empty result is valid;
// rejecting empty names is the caller's job.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		}
	}

	return b.String()
}

// ResolveUniqueSlug probes base, then base-1, base-2, ... and returns
// the first candidate the exists predicate reports as free. The
// predicate defines the uniqueness scope (global for shops, per-shop
// for products) and may exclude the row currently being updated.
func ResolveUniqueSlug(base string, exists func(string) (bool, error)) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("slug existence check failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
