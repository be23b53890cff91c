package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"commitas/internal/store"
)

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true)
	listKeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	listEmailStyle  = lipgloss.NewStyle().Faint(true)
)

// addCmd inserts a new identity into the store
var addCmd = &cobra.Command{
	Use:   "add [key] [name] [email]",
	Short: "Register a new identity under a key",
	Long: `Stores an identity so it can be referenced by its key later.

What happens when the key is already taken is controlled by on_conflict in
the config file (or COMMIT_AS_ON_CONFLICT): "allow" keeps both (lookups
return the oldest), "reject" refuses the insert, "replace" swaps the old
one out.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := store.ParseConflictMode(cfg.OnConflict)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Add(args[0], args[1], args[2], mode); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s <%s>)\n", args[0], args[1], args[2])
		return nil
	},
}

// removeCmd deletes stored identities by key
var removeCmd = &cobra.Command{
	Use:   "remove [key]",
	Short: "Delete every stored identity with the given key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.DeleteByKey(args[0])
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no identities with key %q\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d identity(ies) with key %q\n", n, args[0])
		return nil
	},
}

// listCmd prints every stored identity
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored identities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ids, err := st.ListAll()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no identities stored in %s\n", st.Path())
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, listHeaderStyle.Render(fmt.Sprintf("%-4s %-12s %-24s %s", "ID", "KEY", "NAME", "EMAIL")))
		for _, id := range ids {
			// Key is padded before styling so ANSI codes don't skew the column.
			fmt.Fprintf(out, "%-4d %s %-24s %s\n",
				id.ID,
				listKeyStyle.Render(fmt.Sprintf("%-12s", id.Key)),
				id.Name,
				listEmailStyle.Render(id.Email))
		}
		return nil
	},
}
