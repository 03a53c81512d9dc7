package project

import (
	"fmt"
	"strings"
)

// enumEntry binds a persisted ordinal to its display name.
type enumEntry struct {
	value int
	name  string
}

type enumTable []enumEntry

func (t enumTable) name(v int) (string, bool) {
	for _, e := range t {
		if e.value == v {
			return e.name, true
		}
	}
	return "", false
}

func (t enumTable) parse(s string) (int, bool) {
	s = strings.TrimSpace(s)
	for _, e := range t {
		if strings.EqualFold(e.name, s) {
			return e.value, true
		}
	}
	return 0, false
}

func (t enumTable) format(kind string, v int) string {
	if n, ok := t.name(v); ok {
		return n
	}
	return fmt.Sprintf("%s(%d)", kind, v)
}

func (t enumTable) names() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.name
	}
	return out
}

func parseEnum[T ~int](t enumTable, kind, s string) (T, error) {
	v, ok := t.parse(s)
	if !ok {
		return 0, fmt.Errorf("unknown %s %q (expected one of %s)", strings.ToLower(kind), s, strings.Join(t.names(), ", "))
	}
	return T(v), nil
}

// Platform is the target architecture of the output binary.
type Platform int

const (
	PlatformAnyCPU Platform = iota
	PlatformX86
	PlatformX64
)

var platformTable = enumTable{
	{int(PlatformAnyCPU), "AnyCPU"},
	{int(PlatformX86), "x86"},
	{int(PlatformX64), "x64"},
}

func (v Platform) String() string { return platformTable.format("Platform", int(v)) }

// Valid reports whether v is a known platform.
func (v Platform) Valid() bool {
	_, ok := platformTable.name(int(v))
	return ok
}

// ParsePlatform parses a platform name case-insensitively.
func ParsePlatform(s string) (Platform, error) { return parseEnum[Platform](platformTable, "Platform", s) }

// Manifest is the application manifest embedded into the output binary.
// ManifestNone disables every manifest-dependent feature, such as assembly
// information and visual styles for message boxes.
type Manifest int

const (
	ManifestNone Manifest = iota
	ManifestAsInvoker
	ManifestRequireAdministrator
)

var manifestTable = enumTable{
	{int(ManifestNone), "None"},
	{int(ManifestAsInvoker), "AsInvoker"},
	{int(ManifestRequireAdministrator), "RequireAdministrator"},
}

func (v Manifest) String() string { return manifestTable.format("Manifest", int(v)) }

// Valid reports whether v is a known manifest mode.
func (v Manifest) Valid() bool {
	_, ok := manifestTable.name(int(v))
	return ok
}

// ParseManifest parses a manifest name case-insensitively.
func ParseManifest(s string) (Manifest, error) { return parseEnum[Manifest](manifestTable, "Manifest", s) }

// Obfuscation is the identifier obfuscation preset of the generated code.
type Obfuscation int

const (
	ObfuscationNone Obfuscation = iota
	ObfuscationAlphaNumeric
	ObfuscationSpecial
)

var obfuscationTable = enumTable{
	{int(ObfuscationNone), "None"},
	{int(ObfuscationAlphaNumeric), "AlphaNumeric"},
	{int(ObfuscationSpecial), "Special"},
}

var obfuscationExamples = map[Obfuscation]string{
	ObfuscationNone:         "DropFile",
	ObfuscationAlphaNumeric: "a7Kx2QmZ",
	ObfuscationSpecial:      "ǅǈǋǲᅠᅠ",
}

func (v Obfuscation) String() string { return obfuscationTable.format("Obfuscation", int(v)) }

// Valid reports whether v is a known obfuscation preset.
func (v Obfuscation) Valid() bool {
	_, ok := obfuscationTable.name(int(v))
	return ok
}

// Example returns a sample identifier as it would look after obfuscation.
func (v Obfuscation) Example() string { return obfuscationExamples[v] }

// ParseObfuscation parses an obfuscation preset name case-insensitively.
func ParseObfuscation(s string) (Obfuscation, error) {
	return parseEnum[Obfuscation](obfuscationTable, "Obfuscation", s)
}

// DropLocation is the directory a droppable item is written to at run time.
// Names only collide within the same location.
type DropLocation int

const (
	DropLocationTemp DropLocation = iota
	DropLocationExecutableDirectory
	DropLocationDesktop
	DropLocationDocuments
	DropLocationAppData
	DropLocationLocalAppData
	DropLocationProgramData
	DropLocationUserProfile
)

var dropLocationTable = enumTable{
	{int(DropLocationTemp), "Temp"},
	{int(DropLocationExecutableDirectory), "ExecutableDirectory"},
	{int(DropLocationDesktop), "Desktop"},
	{int(DropLocationDocuments), "Documents"},
	{int(DropLocationAppData), "AppData"},
	{int(DropLocationLocalAppData), "LocalAppData"},
	{int(DropLocationProgramData), "ProgramData"},
	{int(DropLocationUserProfile), "UserProfile"},
}

func (v DropLocation) String() string { return dropLocationTable.format("DropLocation", int(v)) }

// Valid reports whether v is a known drop location.
func (v DropLocation) Valid() bool {
	_, ok := dropLocationTable.name(int(v))
	return ok
}

// ParseDropLocation parses a drop location name case-insensitively.
func ParseDropLocation(s string) (DropLocation, error) {
	return parseEnum[DropLocation](dropLocationTable, "DropLocation", s)
}

// DropAction is what happens to an item after it has been dropped.
type DropAction int

const (
	DropActionNothing DropAction = iota
	DropActionExecute
	DropActionOpen
)

var dropActionTable = enumTable{
	{int(DropActionNothing), "Nothing"},
	{int(DropActionExecute), "Execute"},
	{int(DropActionOpen), "Open"},
}

func (v DropAction) String() string { return dropActionTable.format("DropAction", int(v)) }

// Valid reports whether v is a known drop action.
func (v DropAction) Valid() bool {
	_, ok := dropActionTable.name(int(v))
	return ok
}

// ParseDropAction parses a drop action name case-insensitively.
func ParseDropAction(s string) (DropAction, error) {
	return parseEnum[DropAction](dropActionTable, "DropAction", s)
}

// MessageBoxButtons is the button set of a message box. The ordinals match
// the Win32 MB_* button constants.
type MessageBoxButtons int

const (
	ButtonsOK MessageBoxButtons = iota
	ButtonsOKCancel
	ButtonsAbortRetryIgnore
	ButtonsYesNoCancel
	ButtonsYesNo
	ButtonsRetryCancel
)

var buttonsTable = enumTable{
	{int(ButtonsOK), "OK"},
	{int(ButtonsOKCancel), "OKCancel"},
	{int(ButtonsAbortRetryIgnore), "AbortRetryIgnore"},
	{int(ButtonsYesNoCancel), "YesNoCancel"},
	{int(ButtonsYesNo), "YesNo"},
	{int(ButtonsRetryCancel), "RetryCancel"},
}

func (v MessageBoxButtons) String() string { return buttonsTable.format("MessageBoxButtons", int(v)) }

// Valid reports whether v is a known button set.
func (v MessageBoxButtons) Valid() bool {
	_, ok := buttonsTable.name(int(v))
	return ok
}

// ParseMessageBoxButtons parses a button set name case-insensitively.
func ParseMessageBoxButtons(s string) (MessageBoxButtons, error) {
	return parseEnum[MessageBoxButtons](buttonsTable, "MessageBoxButtons", s)
}

// MessageBoxIcon is the icon of a message box. The ordinals match the Win32
// MB_ICON* constants and are therefore sparse.
type MessageBoxIcon int

const (
	IconNone        MessageBoxIcon = 0
	IconError       MessageBoxIcon = 16
	IconQuestion    MessageBoxIcon = 32
	IconWarning     MessageBoxIcon = 48
	IconInformation MessageBoxIcon = 64
)

var iconTable = enumTable{
	{int(IconNone), "None"},
	{int(IconError), "Error"},
	{int(IconQuestion), "Question"},
	{int(IconWarning), "Warning"},
	{int(IconInformation), "Information"},
}

func (v MessageBoxIcon) String() string { return iconTable.format("MessageBoxIcon", int(v)) }

// Valid reports whether v is a known icon.
func (v MessageBoxIcon) Valid() bool {
	_, ok := iconTable.name(int(v))
	return ok
}

// ParseMessageBoxIcon parses an icon name case-insensitively.
func ParseMessageBoxIcon(s string) (MessageBoxIcon, error) {
	return parseEnum[MessageBoxIcon](iconTable, "MessageBoxIcon", s)
}
