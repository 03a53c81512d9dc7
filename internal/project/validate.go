package project

import (
	"math"
	"strings"

	"github.com/specialistvlad/peunion/internal/fsutil"
)

const (
	// MaxFileSize is the largest file that can be embedded.
	MaxFileSize = math.MaxInt32
	// LargeFileSize is the size above which embedding a file is discouraged.
	LargeFileSize = 100 * 1024 * 1024
)

// unintendedExtensions are drop name extensions that usually mean the wrong
// file was picked: project files and icons.
var unintendedExtensions = []string{"peu", "ico"}

// Validate checks p and returns its issues in a fixed order: project-level
// checks, then file items, URL items and message boxes, each in project
// order. It does not modify p. A nil files uses the real file system.
//
// Name conflicts and duplicates are only reported against items that come
// earlier in the list, so the first occurrence is never flagged.
func Validate(p *Project, files fsutil.FileOracle) []ValidationError {
	if files == nil {
		files = fsutil.OSFiles{}
	}

	var issues []ValidationError

	if p.manifest == ManifestNone && hasAssemblyInfo(p) {
		issues = append(issues, newWarning("", "Assembly Information will be ignored when building without manifest"))
	}
	if p.iconPath != "" {
		if _, ok := files.Stat(p.iconPath); !ok {
			issues = append(issues, newError("", "Icon file '%s' not found", p.iconPath))
		}
	}
	if p.deleteZoneID && p.melt {
		issues = append(issues, newMessage("", "Delete ZoneID has no effect when Melt is enabled"))
	}
	if p.manifest == ManifestNone && len(p.MessageBoxItems()) > 0 {
		issues = append(issues, newMessage("", "No style is applied to Message Boxes, because there is no manifest"))
	}

	if len(p.items) == 0 {
		return append(issues, newError("", "The project does not have any items"))
	}

	for i, it := range p.items {
		if f, ok := it.(*FileItem); ok {
			issues = append(issues, validateFile(p.items[:i], f, files)...)
		}
	}
	for i, it := range p.items {
		if u, ok := it.(*UrlItem); ok {
			issues = append(issues, validateURL(p.items[:i], u)...)
		}
	}
	for _, it := range p.items {
		if m, ok := it.(*MessageBoxItem); ok && isBlank(m.title) && isBlank(m.text) {
			issues = append(issues, newMessage("", "Message Box is empty (no text)"))
		}
	}

	return issues
}

func hasAssemblyInfo(p *Project) bool {
	return p.assemblyTitle != "" ||
		p.assemblyProduct != "" ||
		p.assemblyCopyright != "" ||
		(p.assemblyVersion != "" && p.assemblyVersion != "0.0.0.0")
}

func validateFile(before []Item, f *FileItem, files fsutil.FileOracle) []ValidationError {
	var issues []ValidationError
	source := f.SourceFileName()

	size, exists := files.Stat(f.sourcePath)
	switch {
	case !exists:
		issues = append(issues, newError(source, "'%s' not found", f.sourcePath))
	case size > MaxFileSize:
		issues = append(issues, newError(source, "Only files up to 2 GB are supported"))
	case size > LargeFileSize:
		issues = append(issues, newWarning(source, "Files larger than 100 MB increase build time and require a lot of memory when extracting"))
	}

	name := strings.TrimSpace(f.name)
	switch {
	case name == "":
		issues = append(issues, newError(source, "'%s' must specify a filename", source))
	case !ValidFileName(name):
		issues = append(issues, newError(source, "'%s' is not a valid filename", name))
	default:
		original := Extension(f.sourcePath)
		ext := Extension(name)
		if ext == "" {
			issues = append(issues, newWarning(source, "'%s' has no extension (suggested: %s)", name, original))
		} else if !strings.EqualFold(ext, original) {
			issues = append(issues, newWarning(source, "'%s' has a different extension than the original file (%s)", name, original))
		}
		if isUnintended(ext) {
			issues = append(issues, newWarning(source, "File extension '.%s' - Possibly unintended file", ext))
		}
	}

	if nameConflict(before, f) {
		issues = append(issues, newError(source, "File name '%s' conflicts with other file dropped in the same location", f.name))
	} else if duplicateSource(before, f) {
		issues = append(issues, newMessage(source, "Identical file '%s' added a second time", source))
	}

	return issues
}

func validateURL(before []Item, u *UrlItem) []ValidationError {
	var issues []ValidationError
	source := strings.TrimSpace(u.url)
	if source == "" {
		source = "URL"
	}

	if isBlank(u.url) {
		issues = append(issues, newError(source, "Must specify a URL"))
	} else if !ValidURL(u.url) {
		issues = append(issues, newError(source, "'%s' is not a valid URL", strings.TrimSpace(u.url)))
	}

	name := strings.TrimSpace(u.name)
	switch {
	case name == "":
		issues = append(issues, newError(source, "Must specify a filename"))
	case !ValidFileName(name):
		issues = append(issues, newError(source, "'%s' is not a valid filename", name))
	default:
		ext := Extension(name)
		if ext == "" {
			issues = append(issues, newWarning(source, "'%s' has no extension", name))
		}
		if isUnintended(ext) {
			issues = append(issues, newWarning(source, "File extension '.%s' - Possibly unintended file", ext))
		}
	}

	if nameConflict(before, u) {
		issues = append(issues, newError(source, "File name '%s' conflicts with other file dropped in the same location", u.name))
	} else if duplicateURL(before, u) {
		issues = append(issues, newMessage(source, "Identical URL '%s' added a second time", strings.TrimSpace(u.url)))
	}

	return issues
}

// nameConflict reports whether an earlier file or URL item drops a file with
// the same name into the same location. Drop locations are namespaces shared
// by both kinds.
func nameConflict(before []Item, d Droppable) bool {
	for _, it := range before {
		other, ok := it.(Droppable)
		if !ok {
			continue
		}
		if strings.EqualFold(other.Name(), d.Name()) && other.DropLocation() == d.DropLocation() {
			return true
		}
	}
	return false
}

func duplicateSource(before []Item, f *FileItem) bool {
	for _, it := range before {
		if other, ok := it.(*FileItem); ok && strings.EqualFold(other.sourcePath, f.sourcePath) {
			return true
		}
	}
	return false
}

func duplicateURL(before []Item, u *UrlItem) bool {
	for _, it := range before {
		if other, ok := it.(*UrlItem); ok && other.url == u.url {
			return true
		}
	}
	return false
}

func isUnintended(ext string) bool {
	for _, e := range unintendedExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
