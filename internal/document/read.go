package document

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/specialistvlad/peunion/internal/ctxlog"
	"github.com/specialistvlad/peunion/internal/fsutil"
	"github.com/specialistvlad/peunion/internal/project"
)

// LoadOptions tunes how a document becomes a project.
type LoadOptions struct {
	// StrictEnums rejects integer enum values outside the known range.
	// By default they pass through unchanged.
	StrictEnums bool
	// Files is handed to the project for validation; nil means the OS.
	Files fsutil.FileOracle
	// Sinks are subscribed only after the document loaded successfully.
	Sinks []project.Sink
}

// LoadOption mutates LoadOptions.
type LoadOption func(*LoadOptions)

// WithStrictEnums makes out-of-range enum values a load error.
func WithStrictEnums() LoadOption {
	return func(o *LoadOptions) { o.StrictEnums = true }
}

// WithFiles sets the file oracle of the loaded project.
func WithFiles(f fsutil.FileOracle) LoadOption {
	return func(o *LoadOptions) { o.Files = f }
}

// WithSinks subscribes sinks to the loaded project.
func WithSinks(sinks ...project.Sink) LoadOption {
	return func(o *LoadOptions) { o.Sinks = append(o.Sinks, sinks...) }
}

func buildOptions(opts []LoadOption) LoadOptions {
	var o LoadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load reads the document at path. The returned project is clean, its save
// location is the absolute path and every relative path in the document is
// resolved against the document's directory.
func Load(ctx context.Context, path string, opts ...LoadOption) (*project.Project, error) {
	logger := ctxlog.FromContext(ctx)
	o := buildOptions(opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve project path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	p, err := decode(bytes.NewReader(data), filepath.Dir(abs), o)
	if err != nil {
		var mde *MalformedDocumentError
		if errors.As(err, &mde) {
			mde.Path = abs
		}
		return nil, err
	}
	p.SetSaveLocation(abs)
	p.MarkClean()
	attach(p, o)

	logger.Debug("Project loaded.", "path", abs, "items", p.Len())
	return p, nil
}

// Decode reads a document from r. Relative paths are resolved against dir.
// The project is clean and has no save location.
func Decode(r io.Reader, dir string, opts ...LoadOption) (*project.Project, error) {
	o := buildOptions(opts)
	p, err := decode(r, dir, o)
	if err != nil {
		return nil, err
	}
	p.MarkClean()
	attach(p, o)
	return p, nil
}

func attach(p *project.Project, o LoadOptions) {
	if len(o.Sinks) == 0 {
		return
	}
	for _, s := range o.Sinks {
		p.Subscribe(s)
	}
	p.Revalidate()
}

func decode(r io.Reader, dir string, o LoadOptions) (*project.Project, error) {
	var doc xmlProject
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &MalformedDocumentError{Reason: "invalid XML", Err: err}
	}
	if doc.XMLName.Local != rootElement {
		return nil, &MalformedDocumentError{
			Element: doc.XMLName.Local,
			Reason:  fmt.Sprintf("root element must be <%s>", rootElement),
		}
	}

	var popts []project.Option
	if o.Files != nil {
		popts = append(popts, project.WithFileOracle(o.Files))
	}
	p := project.New(popts...)
	rd := &reader{dir: dir, strict: o.StrictEnums}

	rd.build(p, doc.Build)
	if rd.err != nil {
		return nil, rd.err
	}
	if doc.Items == nil {
		return nil, missingElement("Items")
	}
	items := make([]project.Item, 0, len(doc.Items.Entries))
	for i, el := range doc.Items.Entries {
		it := rd.item(el, i)
		if rd.err != nil {
			return nil, rd.err
		}
		items = append(items, it)
	}
	if err := p.AddItems(items...); err != nil {
		return nil, err
	}
	return p, nil
}

// reader accumulates the first error and turns every later access into a
// no-op, so field reads can be written straight down.
type reader struct {
	dir    string
	strict bool
	err    error
}

func missingElement(path string) *MalformedDocumentError {
	return &MalformedDocumentError{Element: path, Reason: "missing element"}
}

func (r *reader) fail(err *MalformedDocumentError) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) attr(el *xmlAttrs, path, name string) string {
	if r.err != nil {
		return ""
	}
	if el == nil {
		r.fail(missingElement(path))
		return ""
	}
	return r.lookup(el.Attrs, path, name)
}

func (r *reader) lookup(list []xml.Attr, path, name string) string {
	for _, a := range list {
		if a.Name.Local == name {
			return a.Value
		}
	}
	r.fail(&MalformedDocumentError{Element: path, Attribute: name, Reason: "missing attribute"})
	return ""
}

func (r *reader) boolean(el *xmlAttrs, path, name string) bool {
	return r.attr(el, path, name) == "1"
}

func (r *reader) integer(el *xmlAttrs, path, name string) int {
	s := r.attr(el, path, name)
	if r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		r.fail(&MalformedDocumentError{Element: path, Attribute: name, Reason: fmt.Sprintf("%q is not an integer", s)})
		return 0
	}
	return v
}

// path reads an optional path attribute. A missing element or attribute
// reads as "".
func (r *reader) path(el *xmlAttrs, name string) string {
	if r.err != nil || el == nil {
		return ""
	}
	for _, a := range el.Attrs {
		if a.Name.Local == name {
			return resolve(a.Value, r.dir)
		}
	}
	return ""
}

type enumValue interface {
	~int
	Valid() bool
}

func enumAttr[T enumValue](r *reader, el *xmlAttrs, path, name string) T {
	v := T(r.integer(el, path, name))
	if r.err == nil && r.strict && !v.Valid() {
		r.fail(&MalformedDocumentError{Element: path, Attribute: name, Reason: fmt.Sprintf("value %d out of range", int(v))})
	}
	return v
}

func (r *reader) build(p *project.Project, b *xmlBuild) {
	if b == nil {
		r.fail(missingElement("Build"))
		return
	}
	if b.OutputBinary == nil {
		r.fail(missingElement("Build/OutputBinary"))
		return
	}

	const (
		assembly = "Build/OutputBinary/Assembly"
		info     = "Build/OutputBinary/AssemblyInfo"
		codegen  = "Build/CodeGeneration"
		startup  = "Build/Startup"
	)
	ob := b.OutputBinary
	p.SetPlatform(enumAttr[project.Platform](r, ob.Assembly, assembly, "Platform"))
	p.SetManifest(enumAttr[project.Manifest](r, ob.Assembly, assembly, "Manifest"))
	p.SetIconPath(r.path(ob.Icon, "Path"))
	p.SetAssemblyTitle(r.attr(ob.AssemblyInfo, info, "Title"))
	p.SetAssemblyProduct(r.attr(ob.AssemblyInfo, info, "Product"))
	p.SetAssemblyCopyright(r.attr(ob.AssemblyInfo, info, "Copyright"))
	p.SetAssemblyVersion(r.attr(ob.AssemblyInfo, info, "Version"))

	p.SetObfuscation(enumAttr[project.Obfuscation](r, b.CodeGeneration, codegen, "Obfuscation"))
	p.SetStringEncryption(r.boolean(b.CodeGeneration, codegen, "StringEncryption"))
	p.SetStringLiteralEncryption(r.boolean(b.CodeGeneration, codegen, "StringLiteralEncryption"))

	p.SetDeleteZoneID(r.boolean(b.Startup, startup, "DeleteZoneID"))
	p.SetMelt(r.boolean(b.Startup, startup, "Melt"))
}

func (r *reader) item(el xmlItem, i int) project.Item {
	path := fmt.Sprintf("Items/%s[%d]", el.XMLName.Local, i)
	self := &xmlAttrs{Attrs: el.Attrs}

	switch el.XMLName.Local {
	case tagFile:
		f := project.NewFileItem(r.path(self, "Path"))
		f.SetCompress(r.boolean(el.Modification, path+"/Modification", "Compress"))
		f.SetEncrypt(r.boolean(el.Modification, path+"/Modification", "Encrypt"))
		r.dropSettings(f, el, path)
		return f
	case tagUrl:
		u := project.NewUrlItem(r.attr(self, path, "Url"))
		r.dropSettings(u, el, path)
		return u
	case tagMessageBox:
		m := project.NewMessageBoxItem()
		m.SetTitle(r.attr(self, path, "Title"))
		m.SetText(r.attr(self, path, "Text"))
		m.SetButtons(enumAttr[project.MessageBoxButtons](r, self, path, "Buttons"))
		m.SetIcon(enumAttr[project.MessageBoxIcon](r, self, path, "Icon"))
		return m
	default:
		r.fail(&MalformedDocumentError{Element: path, Reason: "unknown item type"})
		return nil
	}
}

// dropTarget is the setter half of project.Droppable.
type dropTarget interface {
	SetName(string)
	SetDropLocation(project.DropLocation)
	SetDropAction(project.DropAction)
	SetRunAsElevated(bool)
	SetCommandLine(string)
	SetAntiSandbox(bool)
	SetAntiNetworkMonitor(bool)
	SetAntiProcessMonitor(bool)
	SetAntiEmulator(bool)
	SetHidden(bool)
}

func (r *reader) dropSettings(d dropTarget, el xmlItem, path string) {
	mod := path + "/Modification"
	drop := path + "/Dropping"
	exec := path + "/Execution"
	antis := path + "/Antis"

	d.SetHidden(r.boolean(el.Modification, mod, "Hidden"))
	d.SetName(r.attr(el.Dropping, drop, "Name"))
	d.SetDropLocation(enumAttr[project.DropLocation](r, el.Dropping, drop, "DropLocation"))
	d.SetDropAction(enumAttr[project.DropAction](r, el.Execution, exec, "DropAction"))
	d.SetRunAsElevated(r.boolean(el.Execution, exec, "Runas"))
	d.SetCommandLine(r.attr(el.Execution, exec, "CommandLine"))
	d.SetAntiSandbox(r.boolean(el.Antis, antis, "Sandboxie"))
	d.SetAntiNetworkMonitor(r.boolean(el.Antis, antis, "Wireshark"))
	d.SetAntiProcessMonitor(r.boolean(el.Antis, antis, "ProcessMonitor"))
	d.SetAntiEmulator(r.boolean(el.Antis, antis, "Emulator"))
}
