package project

import (
	"net/url"
	"strings"
)

// Drop names are Windows file names regardless of the host running the
// validation.
const invalidFileNameChars = `<>:"/\|?*`

var reservedFileNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// ValidFileName reports whether name can be used as a Windows file name.
// Surrounding whitespace is ignored.
func ValidFileName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 || name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(invalidFileNameChars, r) {
			return false
		}
	}
	if strings.HasSuffix(name, ".") {
		return false
	}
	stem := name
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	return !reservedFileNames[strings.ToUpper(strings.TrimSpace(stem))]
}

// ValidURL reports whether raw is an absolute URL with a scheme and a host.
func ValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Extension returns the extension of the last element of p without the
// leading dot. Both slash kinds separate elements.
func Extension(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	i := strings.LastIndexByte(p, '.')
	if i < 0 {
		return ""
	}
	return p[i+1:]
}
