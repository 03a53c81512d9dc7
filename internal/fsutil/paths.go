package fsutil

import (
	"path/filepath"
	"strings"
)

// MakeAbsolute resolves p against base. A blank path becomes empty, an
// absolute path is only cleaned. Surrounding spaces in a non-blank path are
// part of the name and are kept.
func MakeAbsolute(p, base string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}

// MakeRelative returns p relative to base. When no relative form exists (for
// example a different volume on Windows) the cleaned absolute path is
// returned instead.
func MakeRelative(p, base string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	if base == "" || !filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return filepath.Clean(p)
	}
	return rel
}
