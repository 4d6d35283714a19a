package display

import (
	"time"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/installer"
	"github.com/gdlinux/geode-installer/pkg/steam"
)

// Target names the kind of installation a report describes.
type Target string

const (
	TargetSteam Target = "steam"
	TargetWine  Target = "wine"
)

// FieldKind tells styled renderers how to present a field value.
type FieldKind int

const (
	KindPlain FieldKind = iota
	KindPath
	KindFound
	KindMissing
	KindRelease
)

// Field is one labelled row of a human readable report. Multi-valued rows
// (library lists) render one value per line under a single label.
type Field struct {
	Label  string
	Values []string
	Kind   FieldKind
}

// Report is implemented by every result the text and terminal renderers
// know how to lay out. Summary may contain [tag]..[/tag] style markup.
type Report interface {
	Title() string
	Fields() []Field
	Summary() string
}

// LocateReport is the result of the locate command.
type LocateReport struct {
	SteamRoot string    `json:"steam_root" yaml:"steam_root" toml:"steam_root"`
	Libraries []string  `json:"libraries" yaml:"libraries" toml:"libraries"`
	App       steam.App `json:"app" yaml:"app" toml:"app"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}

// NewLocateReport builds a report; a nil library list is normalised to an
// empty one so structured output always carries the key.
func NewLocateReport(root string, libraries []string, app steam.App) *LocateReport {
	if libraries == nil {
		libraries = []string{}
	}
	return &LocateReport{
		SteamRoot: root,
		Libraries: libraries,
		App:       app,
		Timestamp: time.Now(),
	}
}

func (r *LocateReport) Title() string {
	return "Steam installation"
}

func (r *LocateReport) Fields() []Field {
	if r.SteamRoot == "" {
		return []Field{{Label: "Steam root", Values: []string{"not found"}, Kind: KindMissing}}
	}

	fields := []Field{
		{Label: "Steam root", Values: []string{r.SteamRoot}, Kind: KindPath},
		{Label: "Libraries", Values: r.Libraries, Kind: KindPath},
	}
	if !r.App.Found {
		return append(fields, Field{Label: "App " + r.App.AppID, Values: []string{"not installed"}, Kind: KindMissing})
	}

	fields = append(fields,
		Field{Label: "App " + r.App.AppID, Values: []string{r.App.InstallDir}, Kind: KindFound},
		Field{Label: "Library", Values: []string{r.App.Library}, Kind: KindPath},
	)
	if r.App.CompatPrefix == "" {
		return append(fields, Field{Label: "Prefix", Values: []string{"not found"}, Kind: KindMissing})
	}
	return append(fields, Field{Label: "Prefix", Values: []string{r.App.CompatPrefix}, Kind: KindFound})
}

func (r *LocateReport) Summary() string {
	switch {
	case r.SteamRoot == "":
		return "[error]No Steam installation found[/error]"
	case !r.App.Found:
		return "[warning]App " + r.App.AppID + " is not installed in any library[/warning]"
	case r.App.CompatPrefix == "":
		return "[warning]Game found but it has no Proton prefix yet; launch it once through Steam[/warning]"
	default:
		return "[success]Ready to install[/success]"
	}
}

// ReleaseInfo mirrors geode.Release with output tags.
type ReleaseInfo struct {
	Tag string `json:"tag" yaml:"tag" toml:"tag"`
	URL string `json:"url" yaml:"url" toml:"url"`
}

// InstallReport is the result of the steam and wine commands.
type InstallReport struct {
	Target          Target      `json:"target" yaml:"target" toml:"target"`
	GameDir         string      `json:"game_dir" yaml:"game_dir" toml:"game_dir"`
	Prefix          string      `json:"prefix" yaml:"prefix" toml:"prefix"`
	RegistryFile    string      `json:"registry_file" yaml:"registry_file" toml:"registry_file"`
	RegistryChanged bool        `json:"registry_changed" yaml:"registry_changed" toml:"registry_changed"`
	DryRun          bool        `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Release         ReleaseInfo `json:"release" yaml:"release" toml:"release"`
	Timestamp       time.Time   `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}

func NewInstallReport(target Target, res *installer.Result) *InstallReport {
	return &InstallReport{
		Target:          target,
		GameDir:         res.GameDir,
		Prefix:          res.Prefix,
		RegistryFile:    res.RegistryFile,
		RegistryChanged: res.RegistryChanged,
		DryRun:          res.DryRun,
		Release:         ReleaseInfo{Tag: res.Release.Tag, URL: res.Release.URL},
		Timestamp:       time.Now(),
	}
}

func (r *InstallReport) Title() string {
	if r.DryRun {
		return "Installation plan (dry run)"
	}
	return "Geode installation"
}

func (r *InstallReport) Fields() []Field {
	registry := "already configured"
	switch {
	case r.RegistryChanged && r.DryRun:
		registry = "override would be added"
	case r.RegistryChanged:
		registry = "override added"
	}

	return []Field{
		{Label: "Target", Values: []string{string(r.Target)}},
		{Label: "Release", Values: []string{r.Release.Tag}, Kind: KindRelease},
		{Label: "Archive", Values: []string{r.Release.URL}},
		{Label: "Game", Values: []string{r.GameDir}, Kind: KindPath},
		{Label: "Prefix", Values: []string{r.Prefix}, Kind: KindPath},
		{Label: "Registry", Values: []string{r.RegistryFile + " (" + registry + ")"}, Kind: KindPath},
	}
}

func (r *InstallReport) Summary() string {
	if r.DryRun {
		return "[info]Dry run: nothing was downloaded or written[/info]"
	}
	return "[success]Geode [geode]" + r.Release.Tag + "[/geode] installed[/success]"
}

// PatchReport is the result of the patch command.
type PatchReport struct {
	RegistryFile string    `json:"registry_file" yaml:"registry_file" toml:"registry_file"`
	Entry        string    `json:"entry" yaml:"entry" toml:"entry"`
	Changed      bool      `json:"changed" yaml:"changed" toml:"changed"`
	DryRun       bool      `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}

func NewPatchReport(res *installer.PatchResult) *PatchReport {
	return &PatchReport{
		RegistryFile: res.RegistryFile,
		Entry:        res.Entry,
		Changed:      res.Changed,
		DryRun:       res.DryRun,
		Timestamp:    time.Now(),
	}
}

func (r *PatchReport) Title() string {
	return "Wine registry"
}

func (r *PatchReport) Fields() []Field {
	return []Field{
		{Label: "Registry", Values: []string{r.RegistryFile}, Kind: KindPath},
		{Label: "Entry", Values: []string{r.Entry}},
	}
}

func (r *PatchReport) Summary() string {
	switch {
	case !r.Changed:
		return "[muted]Override already present, nothing to do[/muted]"
	case r.DryRun:
		return "[info]Dry run: override would be added[/info]"
	default:
		return "[success]Override added[/success]"
	}
}

// ErrorReport is the structured form of a failed command.
type ErrorReport struct {
	Error   string                 `json:"error" yaml:"error" toml:"error"`
	Code    string                 `json:"code" yaml:"code" toml:"code"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
}

// NewErrorReport extracts the code and details from coded errors. Other
// errors are reported as UNKNOWN.
func NewErrorReport(err error) *ErrorReport {
	report := &ErrorReport{
		Error: err.Error(),
		Code:  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		report.Details = details
	}
	return report
}

// MessageReport wraps a plain message for structured output.
type MessageReport struct {
	Message string `json:"message" yaml:"message" toml:"message"`
}
