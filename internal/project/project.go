package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/peunion/internal/fsutil"
)

// DefaultProjectName is the display name of an unsaved project without file
// items.
const DefaultProjectName = "New Project"

// ErrItemOwned is returned when an item that already belongs to a project is
// added to a project.
var ErrItemOwned = errors.New("item already belongs to a project")

// Project is the aggregate root of a build configuration.
type Project struct {
	saveLocation string
	dirty        bool

	platform          Platform
	manifest          Manifest
	iconPath          string
	assemblyTitle     string
	assemblyProduct   string
	assemblyCopyright string
	assemblyVersion   string

	obfuscation             Obfuscation
	stringEncryption        bool
	stringLiteralEncryption bool

	deleteZoneID bool
	melt         bool

	items []Item

	result     Result
	notifier   Notifier
	files      fsutil.FileOracle
	validating bool
	rerun      bool
}

// Option configures a Project at construction time.
type Option func(*Project)

// WithSink subscribes s before the initial validation pass.
func WithSink(s Sink) Option {
	return func(p *Project) { p.notifier.Subscribe(s) }
}

// WithFileOracle replaces the file system used by validation.
func WithFileOracle(f fsutil.FileOracle) Option {
	return func(p *Project) { p.files = f }
}

// New returns a fresh, clean project with default build settings.
func New(opts ...Option) *Project {
	p := &Project{
		platform:                PlatformAnyCPU,
		manifest:                ManifestAsInvoker,
		obfuscation:             ObfuscationSpecial,
		stringEncryption:        true,
		stringLiteralEncryption: true,
		deleteZoneID:            true,
		items:                   []Item{},
		files:                   fsutil.OSFiles{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.setDirty(false)
	return p
}

// Subscribe registers s for change notifications.
func (p *Project) Subscribe(s Sink) (unsubscribe func()) {
	return p.notifier.Subscribe(s)
}

// Files returns the file oracle used by validation.
func (p *Project) Files() fsutil.FileOracle { return p.files }

// setField is the single mutation entry point for project fields: assign,
// publish, then mark dirty which revalidates.
func setField[T any](p *Project, dst *T, v T, field string) {
	*dst = v
	p.notifier.propertyChanged(Change{Field: field})
	p.setDirty(true)
}

func (p *Project) itemChanged(id uuid.UUID, field string) {
	p.notifier.propertyChanged(Change{ItemID: id, Field: field})
	p.setDirty(true)
}

func (p *Project) setDirty(v bool) {
	p.dirty = v
	p.notifier.propertyChanged(Change{Field: FieldIsDirty})
	p.notifier.propertyChanged(Change{Field: FieldDisplayTitle})
	p.Revalidate()
}

// Revalidate recomputes the validation result and publishes it. A call made
// while a pass is being published (from a Sink) schedules one more pass
// instead of recursing.
func (p *Project) Revalidate() Result {
	if p.validating {
		p.rerun = true
		return p.result
	}
	p.validating = true
	defer func() { p.validating = false }()

	for {
		p.rerun = false
		p.result = NewResult(Validate(p, p.files))
		p.notifier.validationChanged(p.result)
		if !p.rerun {
			return p.result
		}
	}
}

// Validation returns the result of the last validation pass.
func (p *Project) Validation() Result { return p.result }

// IsDirty reports whether the project differs from its last load or save.
func (p *Project) IsDirty() bool { return p.dirty }

// MarkClean clears the dirty flag after a successful load or save.
func (p *Project) MarkClean() { p.setDirty(false) }

// MarkDirty flags the project as modified.
func (p *Project) MarkDirty() { p.setDirty(true) }

// SaveLocation is the absolute path of the project document, or "" for an
// unsaved project.
func (p *Project) SaveLocation() string { return p.saveLocation }

// SetSaveLocation changes the document path. It does not mark the project
// dirty.
func (p *Project) SetSaveLocation(v string) {
	p.saveLocation = v
	p.notifier.propertyChanged(Change{Field: FieldSaveLocation})
	p.notifier.propertyChanged(Change{Field: FieldDisplayTitle})
}

// ProjectName is derived from the save location, else from the name of the
// first file item, else DefaultProjectName.
func (p *Project) ProjectName() string {
	if p.saveLocation != "" {
		return trimExt(filepath.Base(p.saveLocation))
	}
	if files := p.FileItems(); len(files) > 0 {
		return trimExt(files[0].Name())
	}
	return DefaultProjectName
}

// DisplayTitle is the window title of the editing session.
func (p *Project) DisplayTitle() string {
	var b strings.Builder
	b.WriteString(p.ProjectName())
	if p.dirty {
		b.WriteString(" *")
	}
	b.WriteString(" - PEunion")
	return b.String()
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (p *Project) Platform() Platform                { return p.platform }
func (p *Project) Manifest() Manifest                { return p.manifest }
func (p *Project) IconPath() string                  { return p.iconPath }
func (p *Project) AssemblyTitle() string             { return p.assemblyTitle }
func (p *Project) AssemblyProduct() string           { return p.assemblyProduct }
func (p *Project) AssemblyCopyright() string         { return p.assemblyCopyright }
func (p *Project) AssemblyVersion() string           { return p.assemblyVersion }
func (p *Project) Obfuscation() Obfuscation          { return p.obfuscation }
func (p *Project) StringEncryption() bool            { return p.stringEncryption }
func (p *Project) StringLiteralEncryption() bool     { return p.stringLiteralEncryption }
func (p *Project) DeleteZoneID() bool                { return p.deleteZoneID }
func (p *Project) Melt() bool                        { return p.melt }
func (p *Project) ObfuscationExample() string        { return p.obfuscation.Example() }
func (p *Project) SetPlatform(v Platform)            { setField(p, &p.platform, v, "Platform") }
func (p *Project) SetManifest(v Manifest)            { setField(p, &p.manifest, v, "Manifest") }
func (p *Project) SetAssemblyTitle(v string)         { setField(p, &p.assemblyTitle, v, "AssemblyTitle") }
func (p *Project) SetAssemblyProduct(v string)       { setField(p, &p.assemblyProduct, v, "AssemblyProduct") }
func (p *Project) SetAssemblyCopyright(v string)     { setField(p, &p.assemblyCopyright, v, "AssemblyCopyright") }
func (p *Project) SetAssemblyVersion(v string)       { setField(p, &p.assemblyVersion, v, "AssemblyVersion") }
func (p *Project) SetStringEncryption(v bool)        { setField(p, &p.stringEncryption, v, "StringEncryption") }
func (p *Project) SetStringLiteralEncryption(v bool) { setField(p, &p.stringLiteralEncryption, v, "StringLiteralEncryption") }
func (p *Project) SetDeleteZoneID(v bool)            { setField(p, &p.deleteZoneID, v, "DeleteZoneID") }
func (p *Project) SetMelt(v bool)                    { setField(p, &p.melt, v, "Melt") }

// SetIconPath sets the absolute path of the output icon; "" removes it.
func (p *Project) SetIconPath(v string) { setField(p, &p.iconPath, v, "IconPath") }

// SetObfuscation also publishes the derived ObfuscationExample.
func (p *Project) SetObfuscation(v Obfuscation) {
	p.obfuscation = v
	p.notifier.propertyChanged(Change{Field: "Obfuscation"})
	p.notifier.propertyChanged(Change{Field: FieldObfuscationExample})
	p.setDirty(true)
}

// Items returns a copy of the item list in project order.
func (p *Project) Items() []Item { return slices.Clone(p.items) }

// Len returns the number of items.
func (p *Project) Len() int { return len(p.items) }

// FileItems returns the file items in project order.
func (p *Project) FileItems() []*FileItem { return itemsOf[*FileItem](p.items) }

// UrlItems returns the URL items in project order.
func (p *Project) UrlItems() []*UrlItem { return itemsOf[*UrlItem](p.items) }

// MessageBoxItems returns the message box items in project order.
func (p *Project) MessageBoxItems() []*MessageBoxItem { return itemsOf[*MessageBoxItem](p.items) }

func itemsOf[T Item](items []Item) []T {
	var out []T
	for _, it := range items {
		if v, ok := it.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// IndexOf returns the position of it in the item list, or -1.
func (p *Project) IndexOf(it Item) int {
	for i, other := range p.items {
		if other == it {
			return i
		}
	}
	return -1
}

// AddItem appends a detached item to the project.
func (p *Project) AddItem(it Item) error {
	return p.InsertItem(len(p.items), it)
}

// AddItems appends detached items in order with a single change
// notification and a single validation pass. Either every item is attached
// or none is.
func (p *Project) AddItems(items ...Item) error {
	seen := make(map[Item]struct{}, len(items))
	for _, it := range items {
		if err := checkDetached(it); err != nil {
			return err
		}
		if _, dup := seen[it]; dup {
			return fmt.Errorf("add %s item %s: %w", it.Kind(), it.ID(), ErrItemOwned)
		}
		seen[it] = struct{}{}
	}
	if len(items) == 0 {
		return nil
	}
	for _, it := range items {
		it.base().owner = p
	}
	p.items = append(p.items, items...)
	p.itemsChanged()
	return nil
}

// InsertItem attaches a detached item at index i.
func (p *Project) InsertItem(i int, it Item) error {
	if err := checkDetached(it); err != nil {
		return err
	}
	if i < 0 || i > len(p.items) {
		return fmt.Errorf("insert index %d out of range [0, %d]", i, len(p.items))
	}
	it.base().owner = p
	p.items = slices.Insert(p.items, i, it)
	p.itemsChanged()
	return nil
}

func checkDetached(it Item) error {
	if isNilItem(it) {
		return errors.New("cannot add a nil item")
	}
	if it.base().owner != nil {
		return fmt.Errorf("add %s item %s: %w", it.Kind(), it.ID(), ErrItemOwned)
	}
	return nil
}

// isNilItem also catches a nil pointer stored in a non-nil interface.
func isNilItem(it Item) bool {
	switch v := it.(type) {
	case nil:
		return true
	case *FileItem:
		return v == nil
	case *UrlItem:
		return v == nil
	case *MessageBoxItem:
		return v == nil
	}
	return false
}

// RemoveItem detaches it from the project. It reports whether the item was
// found.
func (p *Project) RemoveItem(it Item) bool {
	i := p.IndexOf(it)
	if i < 0 {
		return false
	}
	p.items = slices.Delete(p.items, i, i+1)
	it.base().owner = nil
	p.itemsChanged()
	return true
}

// MoveItem moves the item at index from to index to.
func (p *Project) MoveItem(from, to int) error {
	n := len(p.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d out of range [0, %d)", from, to, n)
	}
	it := p.items[from]
	p.items = slices.Delete(p.items, from, from+1)
	p.items = slices.Insert(p.items, to, it)
	p.itemsChanged()
	return nil
}

// ClearItems detaches every item.
func (p *Project) ClearItems() {
	for _, it := range p.items {
		it.base().owner = nil
	}
	p.items = []Item{}
	p.itemsChanged()
}

func (p *Project) itemsChanged() {
	p.notifier.propertyChanged(Change{Field: FieldItems})
	p.setDirty(true)
}
