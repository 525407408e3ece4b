package bub

import (
	"io"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/spf13/cobra"
)

// generateCompletion writes the completion script for shell
func generateCompletion(rootCmd *cobra.Command, shell string, w io.Writer) error {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(w)
	case "fish":
		err = rootCmd.GenFishCompletion(w, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell: %s", shell).
			WithDetail("shell", shell)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to generate %s completion", shell)
	}
	return nil
}

// GenerateCompletion writes the completion script for shell using a fresh
// root command
func GenerateCompletion(shell string, w io.Writer) error {
	return generateCompletion(NewRootCmd(), shell, w)
}
