package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdlinux/geode-installer/internal/version"
	"github.com/gdlinux/geode-installer/pkg/config"
	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/filesystem"
	"github.com/gdlinux/geode-installer/pkg/paths"
	"github.com/gdlinux/geode-installer/pkg/ui/display"
)

var noConfig = map[string]string{annotationNoConfig: "true"}

func (a *app) newSteamCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "steam",
		Short:   MsgSteamShort,
		Long:    MsgSteamLong,
		GroupID: "install",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.installSteam(cmd)
		},
	}
}

func (a *app) installSteam(cmd *cobra.Command) error {
	result, err := a.installer().InstallToSteam(cmd.Context())
	if err != nil {
		return err
	}
	return a.renderer.RenderResult(display.NewInstallReport(display.TargetSteam, result))
}

func (a *app) newWineCmd() *cobra.Command {
	var prefix, game string

	cmd := &cobra.Command{
		Use:     "wine --prefix <dir> --game <dir>",
		Short:   MsgWineShort,
		Long:    MsgWineLong,
		Example: MsgWineExample,
		GroupID: "install",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.installWine(cmd, prefix, game)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", MsgFlagPrefix)
	cmd.Flags().StringVar(&game, "game", "", MsgFlagGame)
	_ = cmd.MarkFlagRequired("prefix")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagDirname("prefix")
	_ = cmd.MarkFlagDirname("game")

	return cmd
}

func (a *app) installWine(cmd *cobra.Command, prefix, game string) error {
	prefix, err := paths.ExpandHome(strings.TrimSpace(prefix))
	if err != nil {
		return err
	}
	game, err = paths.ExpandHome(strings.TrimSpace(game))
	if err != nil {
		return err
	}

	result, err := a.installer().InstallToWine(cmd.Context(), prefix, game)
	if err != nil {
		return err
	}
	return a.renderer.RenderResult(display.NewInstallReport(display.TargetWine, result))
}

func (a *app) newPatchCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:     "patch --prefix <dir>",
		Short:   MsgPatchShort,
		Long:    MsgPatchLong,
		GroupID: "install",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := paths.ExpandHome(strings.TrimSpace(prefix))
			if err != nil {
				return err
			}
			result, err := a.installer().PatchPrefix(dir)
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(display.NewPatchReport(result))
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", MsgFlagPrefix)
	_ = cmd.MarkFlagRequired("prefix")
	_ = cmd.MarkFlagDirname("prefix")

	return cmd
}

func (a *app) newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "locate",
		Short:   MsgLocateShort,
		Long:    MsgLocateLong,
		Example: MsgLocateExample,
		GroupID: "info",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, libraries, app := a.installer().Inspect()
			return a.renderer.RenderResult(display.NewLocateReport(root, libraries, app))
		},
	}
}

func (a *app) newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "guide [topic]",
		Short:       MsgGuideShort,
		Long:        MsgGuideLong,
		GroupID:     "info",
		Args:        cobra.MaximumNArgs(1),
		Annotations: noConfig,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if a.topics == nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return a.topics.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := defaultTopic
			if len(args) == 1 {
				name = args[0]
			}

			if a.topics == nil {
				return errors.Newf(errors.ErrNotFound, MsgErrUnknownTopic, name)
			}
			topic, ok := a.topics.GetTopic(name)
			if !ok {
				return errors.Newf(errors.ErrNotFound, MsgErrUnknownTopic, name).
					WithDetail("topics", strings.Join(a.topics.ListTopics(), ", "))
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprint(out, a.topics.Render(topic)); err != nil {
				return err
			}
			if name == defaultTopic {
				_, _ = fmt.Fprint(out, MsgGuideTopicsHint)
			}
			return nil
		},
	}
}

func (a *app) newGenConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:         "gen-config",
		Short:       MsgGenConfigShort,
		Long:        MsgGenConfigLong,
		GroupID:     "misc",
		Args:        cobra.NoArgs,
		Annotations: noConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			fsys := filesystem.NewOS()
			target := paths.New().ConfigFile()
			if filesystem.Exists(fsys, target) {
				return errors.Newf(errors.ErrValidation, MsgErrConfigExists, target).
					WithDetail("path", target)
			}
			if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(target))
			}
			if err := fsys.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target).
					WithDetail("path", target)
			}
			return a.renderer.RenderMessage(fmt.Sprintf(MsgConfigWritten, target))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		GroupID:     "misc",
		Args:        cobra.NoArgs,
		Annotations: noConfig,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func (a *app) newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		Annotations:           noConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
