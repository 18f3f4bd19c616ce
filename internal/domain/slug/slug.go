package slug

import "strings"

// Derive turns a human-readable site label into its URL identifier:
// lower-cased, spaces replaced by hyphens. The transform is deterministic so
// the same label always maps to the same slug.
func Derive(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "-")
}
