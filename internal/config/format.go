package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/peunion/internal/document"
	"github.com/specialistvlad/peunion/internal/fsutil"
	"github.com/specialistvlad/peunion/internal/hcltemplate"
	"github.com/specialistvlad/peunion/internal/project"
)

const (
	// ExtDocument is the extension of XML project documents.
	ExtDocument = ".peu"
	// ExtTemplate is the extension of HCL project templates.
	ExtTemplate = ".hcl"
)

// Loader is the interface for a format-specific project reader.
type Loader interface {
	Load(ctx context.Context, path string) (*project.Project, error)
}

// Saver is the interface for a format-specific project writer.
type Saver interface {
	Save(ctx context.Context, p *project.Project, path string) error
}

// Format reads and writes one on-disk representation of a project.
type Format interface {
	Loader
	Saver
	Name() string
}

// Options apply to every format that supports them.
type Options struct {
	StrictEnums bool
	Files       fsutil.FileOracle
}

// UnsupportedFormatError is returned for paths with an unknown extension.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported project format %s for %q (expected %s or %s)", ext, e.Path, ExtDocument, ExtTemplate)
}

// ForPath returns the format matching the extension of path.
func ForPath(path string, opts Options) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtDocument:
		return &DocumentFormat{opts: opts}, nil
	case ExtTemplate:
		return &TemplateFormat{opts: opts}, nil
	default:
		return nil, &UnsupportedFormatError{Path: path, Ext: ext}
	}
}

// Extensions lists every supported extension.
func Extensions() []string { return []string{ExtDocument, ExtTemplate} }

// DocumentFormat is the XML project document.
type DocumentFormat struct{ opts Options }

func (f *DocumentFormat) Name() string { return "document" }

func (f *DocumentFormat) Load(ctx context.Context, path string) (*project.Project, error) {
	var lo []document.LoadOption
	if f.opts.StrictEnums {
		lo = append(lo, document.WithStrictEnums())
	}
	if f.opts.Files != nil {
		lo = append(lo, document.WithFiles(f.opts.Files))
	}
	return document.Load(ctx, path, lo...)
}

func (f *DocumentFormat) Save(ctx context.Context, p *project.Project, path string) error {
	return document.Save(ctx, p, path)
}

// TemplateFormat is the HCL project template.
type TemplateFormat struct{ opts Options }

func (f *TemplateFormat) Name() string { return "template" }

func (f *TemplateFormat) Load(ctx context.Context, path string) (*project.Project, error) {
	var lo []hcltemplate.Option
	if f.opts.Files != nil {
		lo = append(lo, hcltemplate.WithFiles(f.opts.Files))
	}
	return hcltemplate.Load(ctx, path, lo...)
}

func (f *TemplateFormat) Save(ctx context.Context, p *project.Project, path string) error {
	return hcltemplate.Save(ctx, p, path)
}
