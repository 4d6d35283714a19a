package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Prompter asks the user for input in interactive mode.
type Prompter interface {
	Select(title string, options []string) (string, error)
	Input(title, defaultValue string) (string, error)
}

type ptermPrompter struct{}

func (ptermPrompter) Select(title string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithDefaultText(title).
		WithOptions(options).
		Show()
}

func (ptermPrompter) Input(title, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultText(title).
		WithDefaultValue(defaultValue).
		Show()
}

// menu runs the interactive loop until the user quits. Installation
// failures are shown and the menu is offered again; prompt failures end
// the loop.
func (a *app) menu(cmd *cobra.Command) error {
	_ = a.renderer.RenderMessage(MsgHeader)

	for {
		choice, err := a.prompter.Select(MsgMenuTitle, []string{MsgMenuSteam, MsgMenuWine, MsgMenuQuit})
		if err != nil {
			return err
		}

		var runErr error
		switch choice {
		case MsgMenuSteam:
			runErr = a.installSteam(cmd)
		case MsgMenuWine:
			game, err := a.prompter.Input(MsgPromptGame, "")
			if err != nil {
				return err
			}
			prefix, err := a.prompter.Input(MsgPromptPrefix, MsgDefaultWine)
			if err != nil {
				return err
			}
			runErr = a.installWine(cmd, prefix, game)
		default:
			return a.renderer.RenderMessage(MsgGoodbye)
		}

		if runErr != nil {
			_ = a.renderer.RenderError(runErr)
		}
	}
}
