package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryAssessments(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No assessments recorded yet.")
			return nil
		}

		cats := quiz.Categories()
		fmt.Printf("%-5s  %-19s  %-7s  %7s", "ID", "Timestamp", "Status", "Overall")
		for _, c := range cats {
			fmt.Printf("  %6s", c.Short())
		}
		fmt.Println()
		fmt.Println(strings.Repeat("─", 44+8*len(cats)))

		for _, e := range events {
			scores := quiz.ScoresFromLabels(e.Scores)
			maxScores := quiz.ScoresFromLabels(e.MaxScores)
			fmt.Printf("%-5d  %-19s  %-7s  %6d%%",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Status,
				overall(scores, maxScores),
			)
			for _, c := range cats {
				fmt.Printf("  %6s", fmt.Sprintf("%d/%d", scores[c], maxScores[c]))
			}
			fmt.Println()
		}
		return nil
	},
}

func overall(scores, maxScores quiz.Scores) int {
	var score, max int
	for _, c := range quiz.Categories() {
		score += scores[c]
		max += maxScores[c]
	}
	return quiz.Percent(score, max)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
}
