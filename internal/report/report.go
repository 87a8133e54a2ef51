// Package report turns a scored assessment into the view model shared by
// the results screen and the PDF export.
package report

import (
	"github.com/abhisek/pmoquiz/internal/feedback"
	"github.com/abhisek/pmoquiz/internal/flow"
	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/recommend"
)

// Title heads the results view and the exported document.
const Title = "Your PMO Maturity Profile"

// Report is one assessment ready for display.
type Report struct {
	Title      string
	Categories []CategoryResult

	// HasFeedback is false when no recommendations were available.
	HasFeedback bool
}

// CategoryResult is the display data for one category.
type CategoryResult struct {
	Category quiz.Category
	Label    string
	Short    string
	Score    int
	Max      int
	Percent  int

	Sections feedback.Sections

	// Raw is the unparsed feedback. When Fallback is set the sections are
	// empty and Raw must be shown as is.
	Raw      string
	Fallback bool
}

// Build assembles a report in category order. recs may be nil.
func Build(scores, maxScores quiz.Scores, recs recommend.Recommendations) Report {
	r := Report{Title: Title, HasFeedback: recs != nil}
	for _, c := range quiz.Categories() {
		cr := CategoryResult{
			Category: c,
			Label:    c.String(),
			Short:    c.Short(),
			Score:    scores[c],
			Max:      maxScores[c],
			Percent:  quiz.Percent(scores[c], maxScores[c]),
		}
		if recs != nil {
			cr.Raw = recs[c]
			sections, ok := feedback.Format(cr.Raw)
			cr.Sections = sections
			cr.Fallback = !ok
		}
		r.Categories = append(r.Categories, cr)
	}
	return r
}

// FromSession builds the report for a finished session.
func FromSession(s flow.Session) Report {
	return Build(s.Scores, s.MaxScores, s.Recommendations)
}

// Overall is the total score as a percentage of the total maximum.
func (r Report) Overall() int {
	var score, max int
	for _, c := range r.Categories {
		score += c.Score
		max += c.Max
	}
	return quiz.Percent(score, max)
}
