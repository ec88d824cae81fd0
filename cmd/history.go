package cmd

import (
	"fmt"

	"github.com/abhisek/prepgd/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent exam attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		attempts, err := st.ListAttempts(limit)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No exams taken yet.")
			return nil
		}

		fmt.Printf("%-12s %-10s %-30s %8s %5s %5s %5s\n",
			"DATE", "MODE", "TOPIC", "SCORE", "OK", "NOK", "SKIP")
		for _, a := range attempts {
			topic := a.Topic
			if len(topic) > 30 {
				topic = topic[:27] + "..."
			}
			fmt.Printf("%-12s %-10s %-30s %8.2f %5d %5d %5d\n",
				a.TakenAt.Format("02 Jan 2006"), a.Mode, topic,
				a.Score, a.Correct, a.Wrong, a.Skipped)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to list (0 for all)")
}
