package cmd

import (
	"fmt"

	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question bank and maximum scores",
	Run: func(cmd *cobra.Command, args []string) {
		questions := quiz.Bank()
		for i, q := range questions {
			fmt.Printf("%d. [%s] %s\n", i+1, q.Category, q.Text)
			for j, a := range q.Answers {
				fmt.Printf("   %d) %s (%d)\n", j+1, a.Text, a.Score)
			}
			fmt.Println()
		}

		maxScores := quiz.MaxScores(questions)
		fmt.Println("Maximum scores")
		for _, c := range quiz.Categories() {
			fmt.Printf("  %-24s %d\n", c, maxScores[c])
		}
	},
}
