package cmd

import (
	"fmt"
	"sort"

	"github.com/abhisek/prepgd/internal/stats"
	"github.com/abhisek/prepgd/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show topic-wise accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		us, err := st.LoadUserStats()
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		printStats(us)
		return nil
	},
}

func printStats(us stats.UserStats) {
	if len(us.TopicStats) == 0 {
		fmt.Println("No exams taken yet.")
		return
	}

	fmt.Printf("Overall accuracy: %.1f%%\n\n", us.OverallAccuracy)
	fmt.Printf("%-40s %8s %8s %8s\n", "TOPIC", "CORRECT", "TOTAL", "ACC")

	topics := make([]string, 0, len(us.TopicStats))
	for t := range us.TopicStats {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	for _, t := range topics {
		ts := us.TopicStats[t]
		label := ""
		switch {
		case ts.Accuracy < stats.WeakThreshold:
			label = "  weak"
		case ts.Accuracy >= stats.StrongThreshold:
			label = "  strong"
		}
		fmt.Printf("%-40s %8d %8d %7.1f%%%s\n", t, ts.Correct, ts.Total, ts.Accuracy, label)
	}
}
