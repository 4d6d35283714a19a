// Package cli implements the geode-installer command tree.
package cli

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gdlinux/geode-installer/internal/version"
	"github.com/gdlinux/geode-installer/pkg/cobrax/topics"
	"github.com/gdlinux/geode-installer/pkg/config"
	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/installer"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/gdlinux/geode-installer/pkg/ui"
)

//go:embed topics/*.md
var topicsFS embed.FS

const (
	topicsDir    = "topics"
	defaultTopic = "guide"

	// annotationNoConfig marks commands that run without loading config.
	annotationNoConfig = "geode-installer/no-config"
)

// Option customises the command tree, mostly for tests.
type Option func(*app)

// WithInstallerOptions appends installer options after the ones derived
// from config and flags.
func WithInstallerOptions(opts ...installer.Option) Option {
	return func(a *app) { a.installerOpts = append(a.installerOpts, opts...) }
}

// WithPrompter replaces the pterm prompts of the interactive menu.
func WithPrompter(p Prompter) Option {
	return func(a *app) { a.prompter = p }
}

// WithInteractive overrides terminal detection for the bare command.
func WithInteractive(interactive bool) Option {
	return func(a *app) { a.interactive = func() bool { return interactive } }
}

// WithLogSetup replaces logging.SetupLogger.
func WithLogSetup(fn func(verbosity int)) Option {
	return func(a *app) { a.setupLogging = fn }
}

// WithOutput redirects standard output and error.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *app) {
		a.out = out
		a.errOut = errOut
	}
}

type app struct {
	// flags
	verbosity  int
	configFile string
	dryRun     bool
	appID      string
	output     string

	// resolved in PersistentPreRunE
	cfg      *config.Config
	format   ui.Format
	renderer ui.Renderer

	topics        *topics.TopicManager
	installerOpts []installer.Option
	prompter      Prompter
	interactive   func() bool
	setupLogging  func(int)
	out, errOut   io.Writer
}

func newApp(opts ...Option) *app {
	a := &app{
		prompter: ptermPrompter{},
		interactive: func() bool {
			return ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout)
		},
		setupLogging: logging.SetupLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewRootCmd creates and returns the root command
func NewRootCmd(opts ...Option) *cobra.Command {
	return newApp(opts...).rootCmd()
}

// Execute runs the command tree with args and returns the exit code.
// Errors are rendered in the selected output format.
func Execute(args []string, opts ...Option) int {
	a := newApp(opts...)
	rootCmd := a.rootCmd()
	rootCmd.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		a.reportError(rootCmd, err)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:               "geode-installer",
		Short:             MsgRootShort,
		Long:              MsgRootLong,
		Version:           version.Version,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.prepare,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				_ = cmd.Help()
				return errors.New(errors.ErrValidation, MsgErrNoCommand)
			}
			return a.menu(cmd)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	if a.out != nil {
		rootCmd.SetOut(a.out)
	}
	if a.errOut != nil {
		rootCmd.SetErr(a.errOut)
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&a.appID, "app-id", "", MsgFlagAppID)
	pf.StringVarP(&a.output, "output", "o", "auto", MsgFlagOutput)
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json", "yaml", "toml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "install", Title: "Install:"},
		&cobra.Group{ID: "info", Title: "Information:"},
		&cobra.Group{ID: "misc", Title: "Misc:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(
		a.newSteamCmd(),
		a.newWineCmd(),
		a.newPatchCmd(),
		a.newLocateCmd(),
		a.newGuideCmd(),
		a.newGenConfigCmd(),
		a.newVersionCmd(),
		a.newCompletionCmd(),
	)

	tm, err := topics.InitializeWithOptions(rootCmd, topicsFS, topicsDir, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err == nil {
		a.topics = tm
	}

	return rootCmd
}

// prepare sets up logging, output and configuration for every command.
func (a *app) prepare(cmd *cobra.Command, args []string) error {
	a.setupLogging(a.verbosity)
	log.Debug().Str("command", cmd.Name()).Msg("Command started")

	format, err := ui.ParseFormat(a.output)
	if err != nil {
		return err
	}
	a.format = ui.ResolveFormat(format, cmd.OutOrStdout())

	a.renderer, err = ui.NewRenderer(a.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if !needsConfig(cmd) {
		return nil
	}

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("app-id") {
		overrides["game.app_id"] = a.appID
	}
	a.cfg, err = config.Load(config.Options{File: a.configFile, Overrides: overrides})
	return err
}

func needsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return cmd.Annotations[annotationNoConfig] == ""
}

// installer builds an installer from the loaded config and global flags.
func (a *app) installer() *installer.Installer {
	opts := []installer.Option{
		installer.WithDryRun(a.dryRun),
		installer.WithNotifier(a.notify),
		installer.WithProgress(ui.ProgressFactory(MsgDownloadTitle, a.format == ui.FormatTerminal)),
	}
	return installer.FromConfig(a.cfg, append(opts, a.installerOpts...)...)
}

func (a *app) notify(step installer.Step, detail string) {
	log.Info().Str("step", string(step)).Str("detail", detail).Msg("Install step")
	msg, ok := stepMessages[step]
	if !ok || a.format.Structured() {
		return
	}
	_ = a.renderer.RenderMessage(fmt.Sprintf(msg, detail))
}

// reportError renders err. Structured formats keep errors on stdout so
// consumers always get a document; everything else goes to stderr.
func (a *app) reportError(cmd *cobra.Command, err error) {
	log.Debug().Err(err).Msg("Command failed")

	if a.renderer != nil && a.format.Structured() {
		if renderErr := a.renderer.RenderError(err); renderErr == nil {
			return
		}
	}

	errOut := cmd.ErrOrStderr()
	renderer, rerr := ui.NewRenderer(ui.ResolveFormat(ui.FormatAuto, errOut), errOut)
	if rerr != nil {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		return
	}
	_ = renderer.RenderError(err)
}
