package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/priyad/mathventure/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent session results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := store.Open(resolveDBPath(cmd))
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		sessions, err := st.RecentSessions(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet. Run `mathventure play` first.")
			return nil
		}

		fmt.Printf("%-19s  %-12s  %-9s  %-8s  %-7s  %-7s  %s\n",
			"Date", "Player", "Correct", "Acc", "Avg s", "Tier", "Next")
		fmt.Println(strings.Repeat("─", 78))

		for _, sess := range sessions {
			accuracy := 0.0
			if sess.Problems > 0 {
				accuracy = float64(sess.Correct) / float64(sess.Problems) * 100
			}
			tier := fmt.Sprintf("%d", sess.FinalDifficulty)
			if sess.StartDifficulty != sess.FinalDifficulty {
				tier = fmt.Sprintf("%d>%d", sess.StartDifficulty, sess.FinalDifficulty)
			}
			fmt.Printf("%-19s  %-12s  %3d/%-5d  %6.1f%%  %7.1f  %-7s  %d\n",
				sess.StartedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(sess.Player, 12),
				sess.Correct,
				sess.Problems,
				accuracy,
				sess.AvgSeconds,
				tier,
				sess.RecommendedNext,
			)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
