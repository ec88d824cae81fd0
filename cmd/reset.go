package cmd

import (
	"fmt"

	"github.com/abhisek/prepgd/internal/stats"
	"github.com/abhisek/prepgd/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase statistics, history and any interrupted exam",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This erases all statistics and exam history. Re-run with --yes to confirm.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.SaveUserStats(stats.DefaultUserStats()); err != nil {
			return fmt.Errorf("reset stats: %w", err)
		}
		if err := st.ClearHistory(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		if err := st.ClearQuestionCache(); err != nil {
			return fmt.Errorf("clear question cache: %w", err)
		}
		if err := st.ClearSnapshot(); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}

		fmt.Println("All data reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset without prompting")
}
