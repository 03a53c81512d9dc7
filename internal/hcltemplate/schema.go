package hcltemplate

import "github.com/hashicorp/hcl/v2"

const (
	blockBuild      = "build"
	blockAssembly   = "assembly"
	blockFile       = "file"
	blockURL        = "url"
	blockMessageBox = "message_box"
)

// rootSchema keeps blocks in source order, which a struct with one slice per
// block type would lose.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: blockBuild},
		{Type: blockFile, LabelNames: []string{"path"}},
		{Type: blockURL, LabelNames: []string{"url"}},
		{Type: blockMessageBox},
	},
}

// BuildBlock is the content of the single optional `build` block.
type BuildBlock struct {
	Platform                *string        `hcl:"platform,optional"`
	Manifest                *string        `hcl:"manifest,optional"`
	Icon                    *string        `hcl:"icon,optional"`
	Assembly                *AssemblyBlock `hcl:"assembly,block"`
	Obfuscation             *string        `hcl:"obfuscation,optional"`
	StringEncryption        *bool          `hcl:"string_encryption,optional"`
	StringLiteralEncryption *bool          `hcl:"string_literal_encryption,optional"`
	DeleteZoneID            *bool          `hcl:"delete_zone_id,optional"`
	Melt                    *bool          `hcl:"melt,optional"`
}

// AssemblyBlock holds the version resource strings.
type AssemblyBlock struct {
	Title     *string `hcl:"title,optional"`
	Product   *string `hcl:"product,optional"`
	Copyright *string `hcl:"copyright,optional"`
	Version   *string `hcl:"version,optional"`
}

// FileBlock is a `file "<path>"` block. Drop settings live in Remain and
// decode into DropBlock.
type FileBlock struct {
	Compress *bool    `hcl:"compress,optional"`
	Encrypt  *bool    `hcl:"encrypt,optional"`
	Remain   hcl.Body `hcl:",remain"`
}

// DropBlock holds the attributes shared by file and url blocks.
type DropBlock struct {
	Name               *string `hcl:"name,optional"`
	DropLocation       *string `hcl:"drop_location,optional"`
	DropAction         *string `hcl:"drop_action,optional"`
	RunAsElevated      *bool   `hcl:"run_as_elevated,optional"`
	CommandLine        *string `hcl:"command_line,optional"`
	Hidden             *bool   `hcl:"hidden,optional"`
	AntiSandbox        *bool   `hcl:"anti_sandbox,optional"`
	AntiNetworkMonitor *bool   `hcl:"anti_network_monitor,optional"`
	AntiProcessMonitor *bool   `hcl:"anti_process_monitor,optional"`
	AntiEmulator       *bool   `hcl:"anti_emulator,optional"`
}

// MessageBoxBlock is a `message_box` block.
type MessageBoxBlock struct {
	Title   *string `hcl:"title,optional"`
	Text    *string `hcl:"text,optional"`
	Buttons *string `hcl:"buttons,optional"`
	Icon    *string `hcl:"icon,optional"`
}
