package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/abhisek/pmoquiz/internal/export"
	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/recommend"
	"github.com/abhisek/pmoquiz/internal/report"
	"github.com/abhisek/pmoquiz/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a recorded assessment as PDF (latest by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := findAssessment(context.Background(), s.EventRepo(), args)
		if err != nil {
			return err
		}

		if out == "" {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out = filepath.Join(cfg.Export.Dir, export.DefaultFileName)
		}

		if err := export.SaveFile(out, assessmentReport(e)); err != nil {
			return err
		}
		fmt.Printf("Assessment %d exported to %s\n", e.ID, out)
		return nil
	},
}

// findAssessment returns the assessment named by args, or the latest one.
func findAssessment(ctx context.Context, repo store.EventRepo, args []string) (*store.AssessmentEvent, error) {
	if len(args) == 0 {
		events, err := repo.QueryAssessments(ctx, store.QueryOpts{Limit: 1})
		if err != nil {
			return nil, fmt.Errorf("query assessments: %w", err)
		}
		if len(events) == 0 {
			return nil, fmt.Errorf("no assessments recorded yet")
		}
		return &events[0], nil
	}

	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	e, err := repo.GetAssessment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("assessment %d not found", id)
	}
	return e, nil
}

func assessmentReport(e *store.AssessmentEvent) report.Report {
	var recs recommend.Recommendations
	if e.Status == store.StatusReady {
		recs = recommend.FromLabels(e.Recommendations)
	}
	return report.Build(
		quiz.ScoresFromLabels(e.Scores),
		quiz.ScoresFromLabels(e.MaxScores),
		recs,
	)
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default <export dir>/"+export.DefaultFileName+")")
}
