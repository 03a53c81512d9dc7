package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/peunion/internal/fsutil"
	"github.com/specialistvlad/peunion/internal/project"
)

const buildXML = `<Build>
    <OutputBinary>
      <Assembly Platform="1" Manifest="0" />
      <Icon Path="" />
      <AssemblyInfo Title="T" Product="P" Copyright="C" Version="1.0" />
    </OutputBinary>
    <CodeGeneration Obfuscation="0" StringEncryption="1" StringLiteralEncryption="0" />
    <Startup DeleteZoneID="0" Melt="1" />
  </Build>`

func docWithItems(items string) string {
	return "<PEunionProject>" + buildXML + "<Items>" + items + "</Items></PEunionProject>"
}

const fileXML = `<File Path="sub\tool.exe">
  <Modification Compress="1" Encrypt="0" Hidden="1" />
  <Dropping Name="renamed.exe" DropLocation="2" />
  <Execution DropAction="2" Runas="true" CommandLine="-x" />
  <Antis Sandboxie="1" Wireshark="0" ProcessMonitor="1" Emulator="0" />
</File>`

func decodeString(t *testing.T, s string, opts ...LoadOption) (*project.Project, error) {
	t.Helper()
	opts = append([]LoadOption{WithFiles(fsutil.NewMapFiles(nil))}, opts...)
	return Decode(strings.NewReader(s), filepath.FromSlash("/work"), opts...)
}

func TestDecode_ReadsAllFields(t *testing.T) {
	// Act
	p, err := decodeString(t, docWithItems(fileXML+
		`<Url Url="http://host/x.bin"><Modification Hidden="0" /><Dropping Name="x.bin" DropLocation="0" />`+
		`<Execution DropAction="0" Runas="0" CommandLine="" /><Antis Sandboxie="0" Wireshark="1" ProcessMonitor="0" Emulator="1" /></Url>`+
		`<MessageBox Title="Hi" Text="There" Buttons="4" Icon="16" />`))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, project.PlatformX86, p.Platform())
	assert.Equal(t, project.ManifestNone, p.Manifest())
	assert.Empty(t, p.IconPath())
	assert.Equal(t, "T", p.AssemblyTitle())
	assert.Equal(t, "1.0", p.AssemblyVersion())
	assert.Equal(t, project.ObfuscationNone, p.Obfuscation())
	assert.True(t, p.StringEncryption())
	assert.False(t, p.StringLiteralEncryption())
	assert.False(t, p.DeleteZoneID())
	assert.True(t, p.Melt())
	assert.False(t, p.IsDirty())

	require.Equal(t, 3, p.Len())
	f := p.FileItems()[0]
	assert.Equal(t, filepath.Join(filepath.FromSlash("/work"), "sub", "tool.exe"), f.SourcePath())
	assert.Equal(t, "renamed.exe", f.Name())
	assert.True(t, f.Compress())
	assert.False(t, f.Encrypt())
	assert.True(t, f.Hidden())
	assert.Equal(t, project.DropLocationDesktop, f.DropLocation())
	assert.Equal(t, project.DropActionOpen, f.DropAction())
	assert.False(t, f.RunAsElevated(), "only \"1\" reads as true")
	assert.Equal(t, "-x", f.CommandLine())
	assert.True(t, f.AntiSandbox())
	assert.True(t, f.AntiProcessMonitor())

	u := p.UrlItems()[0]
	assert.Equal(t, "http://host/x.bin", u.URL())
	assert.True(t, u.AntiNetworkMonitor())
	assert.True(t, u.AntiEmulator())

	m := p.MessageBoxItems()[0]
	assert.Equal(t, "Hi", m.Title())
	assert.Equal(t, project.ButtonsYesNo, m.Buttons())
	assert.Equal(t, project.IconError, m.Icon())
}

func TestDecode_PreservesItemOrder(t *testing.T) {
	p, err := decodeString(t, docWithItems(
		`<MessageBox Title="a" Text="" Buttons="0" Icon="0" />`+fileXML+
			`<MessageBox Title="b" Text="" Buttons="0" Icon="0" />`))

	require.NoError(t, err)
	items := p.Items()
	require.Len(t, items, 3)
	assert.Equal(t, project.KindMessageBox, items[0].Kind())
	assert.Equal(t, project.KindFile, items[1].Kind())
	assert.Equal(t, "b", items[2].(*project.MessageBoxItem).Title())
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name      string
		doc       string
		element   string
		attribute string
	}{
		{
			name: "invalid xml",
			doc:  "<PEunionProject><Build>",
		},
		{
			name:    "wrong root",
			doc:     "<Project />",
			element: "Project",
		},
		{
			name:    "missing build",
			doc:     "<PEunionProject><Items /></PEunionProject>",
			element: "Build",
		},
		{
			name:    "missing items",
			doc:     "<PEunionProject>" + buildXML + "</PEunionProject>",
			element: "Items",
		},
		{
			name:      "missing attribute",
			doc:       strings.Replace(docWithItems(""), ` Melt="1"`, "", 1),
			element:   "Build/Startup",
			attribute: "Melt",
		},
		{
			name:      "non numeric enum",
			doc:       strings.Replace(docWithItems(""), `Platform="1"`, `Platform="x64"`, 1),
			element:   "Build/OutputBinary/Assembly",
			attribute: "Platform",
		},
		{
			name:    "unknown item",
			doc:     docWithItems(`<Registry Key="HKCU" />`),
			element: "Items/Registry[0]",
		},
		{
			name:    "file without antis",
			doc:     docWithItems(strings.Replace(fileXML, `<Antis Sandboxie="1" Wireshark="0" ProcessMonitor="1" Emulator="0" />`, "", 1)),
			element: "Items/File[0]/Antis",
		},
		{
			name:      "message box without icon",
			doc:       docWithItems(`<MessageBox Title="" Text="" Buttons="0" />`),
			element:   "Items/MessageBox[0]",
			attribute: "Icon",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			p, err := decodeString(t, tc.doc)

			// Assert
			require.Error(t, err)
			assert.Nil(t, p)
			var mde *MalformedDocumentError
			require.True(t, errors.As(err, &mde), "got %T: %v", err, err)
			assert.Equal(t, tc.element, mde.Element)
			assert.Equal(t, tc.attribute, mde.Attribute)
			assert.True(t, IsMalformed(err))
		})
	}
}

func TestDecode_MissingPathsAreAbsent(t *testing.T) {
	withIcon := func(icon string) string {
		return strings.Replace(docWithItems(""), `<Icon Path="" />`, icon, 1)
	}

	cases := []struct {
		name string
		doc  string
	}{
		{name: "icon without path", doc: withIcon("<Icon />")},
		{name: "icon element omitted", doc: withIcon("")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := decodeString(t, tc.doc)

			require.NoError(t, err)
			assert.Empty(t, p.IconPath())
		})
	}
}

func TestDecode_FileWithoutPath(t *testing.T) {
	// Arrange
	doc := docWithItems(strings.Replace(fileXML, `<File Path="sub\tool.exe">`, "<File>", 1))

	// Act
	p, err := decodeString(t, doc)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
	f := p.FileItems()[0]
	assert.Empty(t, f.SourcePath())
	assert.Equal(t, "renamed.exe", f.Name())
	assert.Contains(t, messagesOf(p.Validation()), "'' not found")
}

// countingFiles counts oracle lookups.
type countingFiles struct {
	fsutil.FileOracle
	stats int
}

func (c *countingFiles) Stat(path string) (int64, bool) {
	c.stats++
	return c.FileOracle.Stat(path)
}

func TestDecode_ValidatesOncePerPhase(t *testing.T) {
	// Arrange
	const n = 300
	var items strings.Builder
	for i := range n {
		items.WriteString(strings.Replace(fileXML, `sub\tool.exe`, fmt.Sprintf(`bin\f%d.exe`, i), 1))
	}
	files := &countingFiles{FileOracle: fsutil.NewMapFiles(nil)}

	// Act
	p, err := Decode(strings.NewReader(docWithItems(items.String())), filepath.FromSlash("/work"), WithFiles(files))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, n, p.Len())
	assert.Equal(t, 2*n, files.stats, "one pass when the items are attached and one when the project is marked clean")
}

func TestDecode_OutOfRangeEnums(t *testing.T) {
	doc := strings.Replace(docWithItems(""), `Obfuscation="0"`, `Obfuscation="9"`, 1)

	t.Run("pass through by default", func(t *testing.T) {
		p, err := decodeString(t, doc)

		require.NoError(t, err)
		assert.Equal(t, project.Obfuscation(9), p.Obfuscation())
		assert.False(t, p.Obfuscation().Valid())
	})

	t.Run("rejected when strict", func(t *testing.T) {
		_, err := decodeString(t, doc, WithStrictEnums())

		var mde *MalformedDocumentError
		require.ErrorAs(t, err, &mde)
		assert.Equal(t, "Obfuscation", mde.Attribute)
		assert.Contains(t, mde.Error(), "out of range")
	})
}

func TestLoad_SetsPathOnMalformedError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.peu")
	require.NoError(t, os.WriteFile(path, []byte("<nope"), 0o644))

	_, err := Load(context.Background(), path)

	var mde *MalformedDocumentError
	require.ErrorAs(t, err, &mde)
	assert.Equal(t, path, mde.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.peu"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, IsMalformed(err))
}

func TestLoad_SinksSeeOnlyFinalValidation(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "p.peu")
	require.NoError(t, os.WriteFile(path, []byte(docWithItems(`<MessageBox Title="" Text="" Buttons="0" Icon="64" />`)), 0o644))

	var changes []project.Change
	var results []project.Result
	sink := project.SinkFuncs{
		OnPropertyChanged:   func(c project.Change) { changes = append(changes, c) },
		OnValidationChanged: func(r project.Result) { results = append(results, r) },
	}

	// Act
	p, err := Load(context.Background(), path, WithSinks(sink), WithFiles(fsutil.NewMapFiles(nil)))

	// Assert
	require.NoError(t, err)
	assert.Empty(t, changes, "loading must not leak intermediate property changes")
	require.Len(t, results, 1)
	assert.Equal(t, p.Validation(), results[0])
	assert.Contains(t, messagesOf(results[0]), "Message Box is empty (no text)")
}

func messagesOf(r project.Result) []string {
	out := make([]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		out = append(out, i.Message)
	}
	return out
}

func TestResolve(t *testing.T) {
	dir := filepath.FromSlash("/docs/proj")

	assert.Empty(t, resolve("", dir))
	assert.Empty(t, resolve("   ", dir))
	assert.Equal(t, filepath.Join(dir, "a", "b.exe"), resolve(`a\b.exe`, dir))
	assert.Equal(t, filepath.Join(dir, "a", "b.exe"), resolve("a/b.exe", dir))
	assert.Equal(t, filepath.Join(filepath.FromSlash("/docs"), "x.ico"), resolve(`..\x.ico`, dir))
}
