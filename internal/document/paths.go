package document

import (
	"path/filepath"
	"strings"

	"github.com/specialistvlad/peunion/internal/fsutil"
)

// resolve turns a stored path into an absolute one. Documents written on
// Windows use backslashes, so both separators are accepted.
func resolve(stored, dir string) string {
	if strings.TrimSpace(stored) == "" {
		return ""
	}
	native := filepath.FromSlash(strings.ReplaceAll(stored, `\`, "/"))
	return fsutil.MakeAbsolute(native, dir)
}

func relativize(path, dir string) string {
	return fsutil.MakeRelative(path, dir)
}
