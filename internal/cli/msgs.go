package cli

import (
	_ "embed"
	"strings"

	"github.com/gdlinux/geode-installer/pkg/installer"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install the Geode mod loader into Geometry Dash on Linux"
	MsgSteamShort      = "Install into the Steam copy of Geometry Dash"
	MsgWineShort       = "Install into a Wine prefix"
	MsgLocateShort     = "Show where Steam, the game and its prefix are"
	MsgPatchShort      = "Only add the DLL override to a prefix"
	MsgGuideShort      = "Read the bundled guide"
	MsgGenConfigShort  = "Print or write the default configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Show what would be done without downloading or writing anything"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/geode-installer/config.toml)"
	MsgFlagAppID   = "Steam App ID to resolve (default from config, 322170)"
	MsgFlagOutput  = "Output format: auto, term, text, json, yaml, toml"
	MsgFlagPrefix  = "Wine prefix directory (the one containing user.reg)"
	MsgFlagGame    = "Game directory (the one containing GeometryDash.exe)"
	MsgFlagWrite   = "Write the config to the user config location instead of stdout"

	// Interactive menu
	MsgHeader       = "[title]Geode Installer for Linux[/title]"
	MsgMenuTitle    = "Select an action"
	MsgMenuSteam    = "Install to Steam"
	MsgMenuWine     = "Install to Wine prefix"
	MsgMenuQuit     = "Quit"
	MsgPromptGame   = "Enter your Geometry Dash path"
	MsgPromptPrefix = "Enter your Wine prefix path"
	MsgDefaultWine  = "~/.wine"
	MsgGoodbye      = "Exiting..."

	// Status messages
	MsgDownloadTitle   = "Downloading Geode"
	MsgConfigWritten   = "[success]Wrote default configuration to[/success] [path]%s[/path]"
	MsgVersionFormat   = "geode-installer version %s\n"
	MsgCommitFormat    = "Commit: %s\n"
	MsgBuiltFormat     = "Built:  %s\n"
	MsgGuideTopicsHint = "\nMore topics: geode-installer help topics\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrUnknownTopic = "unknown guide topic: %s"
	MsgErrConfigExists = "config file already exists: %s"
)

// stepMessages are shown while installing. Steps without a message are
// only logged.
var stepMessages = map[installer.Step]string{
	installer.StepSteamRoot: "Found Steam at [path]%s[/path]",
	installer.StepGame:      "Found Geometry Dash in [path]%s[/path]",
	installer.StepPrefix:    "Using Proton prefix [path]%s[/path]",
	installer.StepRelease:   "Latest Geode release is [geode]%s[/geode]",
	installer.StepExtract:   "Extracting into [path]%s[/path]",
	installer.StepPatch:     "Patching [path]%s[/path]",
}

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/steam-long.txt
	msgSteamLongRaw string
	MsgSteamLong    = strings.TrimSpace(msgSteamLongRaw)

	//go:embed msgs/wine-long.txt
	msgWineLongRaw string
	MsgWineLong    = strings.TrimSpace(msgWineLongRaw)

	//go:embed msgs/wine-example.txt
	msgWineExampleRaw string
	MsgWineExample    = strings.TrimRight(msgWineExampleRaw, "\n")

	//go:embed msgs/locate-long.txt
	msgLocateLongRaw string
	MsgLocateLong    = strings.TrimSpace(msgLocateLongRaw)

	//go:embed msgs/locate-example.txt
	msgLocateExampleRaw string
	MsgLocateExample    = strings.TrimRight(msgLocateExampleRaw, "\n")

	//go:embed msgs/patch-long.txt
	msgPatchLongRaw string
	MsgPatchLong    = strings.TrimSpace(msgPatchLongRaw)

	//go:embed msgs/guide-long.txt
	msgGuideLongRaw string
	MsgGuideLong    = strings.TrimSpace(msgGuideLongRaw)

	//go:embed msgs/gen-config-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
