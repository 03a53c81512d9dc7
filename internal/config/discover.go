package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/specialistvlad/peunion/internal/fsutil"
)

// Discover expands paths into project files. Files are taken as given,
// whatever their extension; directories are searched recursively for every
// supported extension. Results keep argument order and contain no
// duplicates.
func Discover(paths ...string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		all = append(all, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(path))
			continue
		}

		var found []string
		for _, ext := range Extensions() {
			files, err := fsutil.FindFilesByExtension(path, ext)
			if err != nil {
				return nil, err
			}
			found = append(found, files...)
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}
	return all, nil
}
