package main

import (
	"github.com/spf13/cobra"

	"commitas/internal/gitexec"
)

// gitRunner builds the git invoker from the loaded configuration.
func gitRunner() *gitexec.Runner {
	return gitexec.New(cfg.GitPath, logger)
}

// commitCmd performs one commit attributed to the chosen identity
var commitCmd = &cobra.Command{
	Use:   "commit [identity] [extra git args...]",
	Short: "Perform a single commit as the given identity",
	Long: `Resolves the identity (a stored key, or a raw literal with --raw-user) and
runs git commit with user.name and user.email overridden for just that
invocation. Everything after the identity is passed to git unchanged:

  commit-as commit work -m "fix build"
  commit-as commit -r "Alice A;alice@example.com" --amend

Terminal control is handed to git, so interactive commits (editors, hooks)
behave as usual. commit-as exits with git's own exit status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveIdentity(args[0])
		if err != nil {
			return err
		}
		runner := gitRunner()
		return runner.Commit(cmd.Context(), id, args[1:])
	},
}

// setCmd persists the identity into git's global configuration
var setCmd = &cobra.Command{
	Use:   "set [identity]",
	Short: "Persist the given identity as git's global user.name/user.email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveIdentity(args[0])
		if err != nil {
			return err
		}
		runner := gitRunner()
		return runner.SetGlobal(cmd.Context(), id)
	},
}

func init() {
	// Everything after the identity argument belongs to git, even when it
	// looks like a flag.
	commitCmd.Flags().SetInterspersed(false)
}
