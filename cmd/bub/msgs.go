package bub

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link the files of a package into a target directory"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice = "DRY RUN MODE - No changes were made"
	MsgSavedConfig  = "Saved config to %s"

	// Error messages
	MsgErrNoPackages = "at least one package is required"
	MsgErrPackage    = "failed to unbox %s"

	// Flag descriptions
	MsgFlagTarget         = "Directory to link into (default: home directory)"
	MsgFlagIgnore         = "Regex of file or directory names to skip (repeatable)"
	MsgFlagInclude        = "Regex that some path component must match (repeatable)"
	MsgFlagLinkRoot       = "Link the package directory itself instead of its files"
	MsgFlagLinkType       = "Link type: absolute, relative or hard"
	MsgFlagIfTargetExists = "What to do with existing files: adopt, ignore, move, overwrite or error"
	MsgFlagSaveConfig     = "Write the effective config to the package's .bub.toml"
	MsgFlagSaveOSConfig   = "Write the effective config to the package's OS specific descriptor"
	MsgFlagDryRun         = "Print the plan without touching the filesystem"
	MsgFlagColor          = "Color output: always, auto or never"
	MsgFlagFormat         = "Output format: auto, term, text or json"
	MsgFlagNoCreateDirs   = "Do not create missing target directories"
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
