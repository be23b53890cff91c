package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"commitas/internal/config"
	"commitas/internal/gitexec"
	"commitas/internal/identity"
	"commitas/internal/store"
)

var (
	// Global flags
	verbose    bool
	rawUser    bool
	dbPath     string
	configPath string

	// Loaded configuration
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "commit-as",
	Short: "Commit with one of several pre-registered git identities",
	Long: `commit-as keeps a small database of identities (key, name, email) and
applies one of them to a git action without editing configuration by hand.

A single commit can be attributed to a stored identity, or the identity can
be persisted as git's global user.name/user.email. Identities are referenced
by their key, or supplied inline with --raw-user as "name;email" or
"key;name;email".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		// Flag beats environment beats config file.
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openStore opens the identity database for one invocation. Callers must
// defer Close so the handle is released on every exit path.
func openStore() (*store.Store, error) {
	return store.Open(cfg.DBPath, logger)
}

// resolveIdentity turns the CLI identity argument into a concrete identity,
// honoring --raw-user. Key mode needs the store open for the lookup.
func resolveIdentity(ref string) (identity.Identity, error) {
	if rawUser {
		return identity.Resolver{}.Resolve(ref, true)
	}

	st, err := openStore()
	if err != nil {
		return identity.Identity{}, err
	}
	defer st.Close()

	return identity.Resolver{Store: st}.Resolve(ref, false)
}

// exitCodeFor maps an error to the process exit status. Git's own exit code
// is mirrored; a bad raw literal is 2, an unknown key 3, anything else 1.
func exitCodeFor(err error) int {
	var exitErr *gitexec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var parseErr *identity.ParseError
	if errors.As(err, &parseErr) {
		return 2
	}
	var notFound *identity.NotFoundError
	if errors.As(err, &notFound) {
		return 3
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&rawUser, "raw-user", "r", false, `treat the identity argument as a raw "name;email" or "key;name;email" literal`)
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "identity database file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")

	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
