package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atinylittleshell/intellicomp/internal/hooks"
	"github.com/atinylittleshell/intellicomp/internal/shell"
	"github.com/atinylittleshell/intellicomp/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHookCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook [shell]",
		Short: "Print the shell code that enables intellicomp",
		Long: `Print the shell code that registers intellicomp for every command with a
schema. The schema repository is cloned on first use.

  bash:  eval "$(intellicomp hook bash)"   in ~/.bashrc
  zsh:   eval "$(intellicomp hook zsh)"    in ~/.zshrc
  fish:  intellicomp hook fish | source    in ~/.config/fish/config.fish

The shell is detected when omitted.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: shell.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sh  shell.Shell
				err error
			)
			if len(args) == 1 {
				sh, err = shell.Parse(args[0])
			} else {
				sh, err = shell.Detect()
			}
			if err != nil {
				return err
			}

			binary, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to locate intellicomp binary: %w", err)
			}
			if resolved, err := filepath.EvalSymlinks(binary); err == nil {
				binary = resolved
			}

			lines, err := a.hook(cmd, sh, binary)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			if isTerminal(out) {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Muted.Render(hookHint(sh)))
			}
			return nil
		},
	}
	return cmd
}

func (a *app) hook(cmd *cobra.Command, sh shell.Shell, binary string) ([]string, error) {
	generator, err := hooks.ForShell(sh, binary, a.logger)
	if err != nil {
		return nil, err
	}

	cloned, err := a.store().Ensure(cmd.Context())
	if err != nil {
		return nil, err
	}
	if cloned {
		a.logger.Info("schema repository cloned", zap.String("dir", a.cfg.SchemaDir))
	}

	return generator.GenerateCompletionCommands(a.cfg.SchemaDir)
}

func hookHint(sh shell.Shell) string {
	switch sh {
	case shell.Fish:
		return "Add `intellicomp hook fish | source` to ~/.config/fish/config.fish to enable completions."
	case shell.Zsh:
		return "Add `eval \"$(intellicomp hook zsh)\"` to ~/.zshrc to enable completions."
	default:
		return "Add `eval \"$(intellicomp hook bash)\"` to ~/.bashrc to enable completions."
	}
}
