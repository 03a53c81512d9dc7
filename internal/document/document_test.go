package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/peunion/internal/fsutil"
	"github.com/specialistvlad/peunion/internal/project"
)

// dropView is the comparable shape of project.Droppable.
type dropView struct {
	Name        string
	Location    project.DropLocation
	Action      project.DropAction
	Elevated    bool
	CommandLine string
	Sandbox     bool
	Network     bool
	Process     bool
	Emulator    bool
	Hid         bool
}

type itemView struct {
	Kind     project.ItemKind
	Source   string
	Compress bool
	Encrypt  bool
	Drop     *dropView
	Title    string
	Text     string
	Buttons  project.MessageBoxButtons
	Icon     project.MessageBoxIcon
}

type projectView struct {
	Platform          project.Platform
	Manifest          project.Manifest
	IconPath          string
	Title             string
	Product           string
	Copyright         string
	Version           string
	Obfuscation       project.Obfuscation
	StringEncryption  bool
	LiteralEncryption bool
	ZoneID            bool
	Melt              bool
	Items             []itemView
}

func viewDrop(d project.Droppable) *dropView {
	return &dropView{
		Name: d.Name(), Location: d.DropLocation(), Action: d.DropAction(),
		Elevated: d.RunAsElevated(), CommandLine: d.CommandLine(),
		Sandbox: d.AntiSandbox(), Network: d.AntiNetworkMonitor(),
		Process: d.AntiProcessMonitor(), Emulator: d.AntiEmulator(), Hid: d.Hidden(),
	}
}

func view(p *project.Project) projectView {
	v := projectView{
		Platform: p.Platform(), Manifest: p.Manifest(), IconPath: p.IconPath(),
		Title: p.AssemblyTitle(), Product: p.AssemblyProduct(),
		Copyright: p.AssemblyCopyright(), Version: p.AssemblyVersion(),
		Obfuscation: p.Obfuscation(), StringEncryption: p.StringEncryption(),
		LiteralEncryption: p.StringLiteralEncryption(), ZoneID: p.DeleteZoneID(), Melt: p.Melt(),
	}
	for _, it := range p.Items() {
		iv := itemView{Kind: it.Kind()}
		switch x := it.(type) {
		case *project.FileItem:
			iv.Source, iv.Compress, iv.Encrypt, iv.Drop = x.SourcePath(), x.Compress(), x.Encrypt(), viewDrop(x)
		case *project.UrlItem:
			iv.Source, iv.Drop = x.URL(), viewDrop(x)
		case *project.MessageBoxItem:
			iv.Title, iv.Text, iv.Buttons, iv.Icon = x.Title(), x.Text(), x.Buttons(), x.Icon()
		}
		v.Items = append(v.Items, iv)
	}
	return v
}

func sampleProject(t *testing.T, dir string) *project.Project {
	t.Helper()
	p := project.New(project.WithFileOracle(fsutil.NewMapFiles(nil)))
	p.SetPlatform(project.PlatformX64)
	p.SetManifest(project.ManifestRequireAdministrator)
	p.SetIconPath(filepath.Join(dir, "icons", "app.ico"))
	p.SetAssemblyTitle(`Setup "Tool" <1>`)
	p.SetAssemblyProduct("Product & Co")
	p.SetAssemblyCopyright("(c) 2024")
	p.SetAssemblyVersion("1.2.3.4")
	p.SetObfuscation(project.ObfuscationAlphaNumeric)
	p.SetStringLiteralEncryption(false)
	p.SetMelt(true)

	f := project.NewFileItem(filepath.Join(dir, "bin", "setup.exe"))
	f.SetCompress(false)
	f.SetHidden(true)
	f.SetDropLocation(project.DropLocationAppData)
	f.SetDropAction(project.DropActionOpen)
	f.SetRunAsElevated(true)
	f.SetCommandLine("/quiet /norestart")
	f.SetAntiSandbox(true)
	f.SetAntiEmulator(true)
	require.NoError(t, p.AddItem(f))

	u := project.NewUrlItem("https://example.com/files/tool.zip")
	u.SetAntiNetworkMonitor(true)
	u.SetAntiProcessMonitor(true)
	require.NoError(t, p.AddItem(u))

	m := project.NewMessageBoxItem()
	m.SetTitle("Hello")
	m.SetText("line one\nline two")
	m.SetButtons(project.ButtonsYesNo)
	m.SetIcon(project.IconWarning)
	require.NoError(t, p.AddItem(m))
	return p
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.peu")
	original := sampleProject(t, dir)
	ctx := context.Background()

	// Act
	require.NoError(t, Save(ctx, original, path))
	loaded, err := Load(ctx, path, WithFiles(fsutil.NewMapFiles(nil)))

	// Assert
	require.NoError(t, err)
	if diff := cmp.Diff(view(original), view(loaded)); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
	assert.False(t, original.IsDirty())
	assert.False(t, loaded.IsDirty())
	assert.Equal(t, path, original.SaveLocation())
	assert.Equal(t, path, loaded.SaveLocation())
	assert.Equal(t, "demo - PEunion", loaded.DisplayTitle())
}

func TestDecode_EmptyProjectRoundTrip(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	original := project.New(project.WithFileOracle(fsutil.NewMapFiles(nil)))
	var buf bytes.Buffer

	// Act
	require.NoError(t, Encode(&buf, original, dir))
	decoded, err := Decode(&buf, dir, WithFiles(fsutil.NewMapFiles(nil)))

	// Assert
	require.NoError(t, err)
	if diff := cmp.Diff(view(original), view(decoded), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("empty project mismatch (-encoded +decoded):\n%s", diff)
	}
	assert.Empty(t, decoded.SaveLocation())
	assert.Equal(t, "New Project - PEunion", decoded.DisplayTitle())
}

func TestEncode_PathsAreRelativeAndBoolsAreDigits(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := sampleProject(t, dir)
	var buf bytes.Buffer

	// Act
	require.NoError(t, Encode(&buf, p, dir))

	// Assert
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<PEunionProject>`)
	assert.Contains(t, out, `Path="`+filepath.Join("icons", "app.ico")+`"`)
	assert.Contains(t, out, `Path="`+filepath.Join("bin", "setup.exe")+`"`)
	assert.Contains(t, out, `<Assembly Platform="2" Manifest="2">`)
	assert.Contains(t, out, `<Startup DeleteZoneID="1" Melt="1">`)
	assert.Contains(t, out, `StringLiteralEncryption="0"`)
	assert.Contains(t, out, `Runas="1"`)
	assert.Contains(t, out, `<MessageBox Title="Hello"`)
	assert.Contains(t, out, `Icon="48"`)
	assert.NotContains(t, out, dir)
}

func TestSave_EncryptionFlagsPersistAsOne(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.peu")
	p := project.New(project.WithFileOracle(fsutil.NewMapFiles(nil)))
	p.SetStringEncryption(true)
	p.SetStringLiteralEncryption(true)

	// Act
	require.NoError(t, Save(context.Background(), p, path))
	data, err := os.ReadFile(path)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, string(data), `StringEncryption="1" StringLiteralEncryption="1"`)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	p := project.New(project.WithFileOracle(fsutil.NewMapFiles(nil)))

	require.NoError(t, Save(context.Background(), p, filepath.Join(dir, "a.peu")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.peu", entries[0].Name())
}

func TestSave_DirtyProjectBecomesClean(t *testing.T) {
	dir := t.TempDir()
	p := project.New(project.WithFileOracle(fsutil.NewMapFiles(nil)))
	p.SetAssemblyTitle("x")
	require.True(t, p.IsDirty())

	require.NoError(t, Save(context.Background(), p, filepath.Join(dir, "x.peu")))

	assert.False(t, p.IsDirty())
	assert.Equal(t, "x - PEunion", p.DisplayTitle())
}

func TestSave_FailureKeepsProjectDirty(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	p := project.New(project.WithFileOracle(fsutil.NewMapFiles(nil)))
	p.SetMelt(true)

	err := Save(context.Background(), p, filepath.Join(blocker, "sub", "x.peu"))

	require.Error(t, err)
	assert.True(t, p.IsDirty())
	assert.Empty(t, p.SaveLocation())
}

func TestEncodeDecode_KeepsSurroundingSpacesInPaths(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	source := filepath.Join(dir, "bin", " tool .exe ")
	p := project.New(project.WithFileOracle(fsutil.NewMapFiles(nil)))
	require.NoError(t, p.AddItem(project.NewFileItem(source)))
	var buf bytes.Buffer

	// Act
	require.NoError(t, Encode(&buf, p, dir))
	decoded, err := Decode(&buf, dir, WithFiles(fsutil.NewMapFiles(nil)))

	// Assert
	require.NoError(t, err)
	require.Equal(t, 1, decoded.Len())
	assert.Equal(t, source, decoded.FileItems()[0].SourcePath())
}
