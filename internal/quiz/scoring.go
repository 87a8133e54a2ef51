package quiz

import (
	"errors"
	"fmt"
	"math"
)

// ErrAnswerOutOfRange is returned when a selection points outside a
// question's answer list.
var ErrAnswerOutOfRange = errors.New("answer index out of range")

// AnswerRangeError identifies the offending selection.
type AnswerRangeError struct {
	QuestionID int
	Index      int
	Answers    int
}

func (e *AnswerRangeError) Error() string {
	return fmt.Sprintf("question %d: answer %d not in [0, %d)", e.QuestionID, e.Index, e.Answers)
}

func (e *AnswerRangeError) Unwrap() error { return ErrAnswerOutOfRange }

// Selection maps question ID to the index of the chosen answer.
type Selection map[int]int

// Scores maps every category to a point total.
type Scores map[Category]int

// Clone returns an independent copy.
func (s Scores) Clone() Scores {
	if s == nil {
		return nil
	}
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Labels converts to a label-keyed map for storage and JSON.
func (s Scores) Labels() map[string]int {
	out := make(map[string]int, len(s))
	for k, v := range s {
		out[string(k)] = v
	}
	return out
}

// ScoresFromLabels is the inverse of Labels. Unknown labels are dropped.
func ScoresFromLabels(m map[string]int) Scores {
	out := zeroScores()
	for k, v := range m {
		if c := Category(k); c.Valid() {
			out[c] = v
		}
	}
	return out
}

func zeroScores() Scores {
	s := make(Scores, len(categories))
	for _, c := range categories {
		s[c] = 0
	}
	return s
}

// MaxScores sums the best answer of every question per category. All five
// categories are present; a category without questions maps to 0.
func MaxScores(questions []Question) Scores {
	out := zeroScores()
	for _, q := range questions {
		best := 0
		for _, a := range q.Answers {
			if a.Score > best {
				best = a.Score
			}
		}
		out[q.Category] += best
	}
	return out
}

// ComputeScores sums the selected answer of every question per category.
// Unanswered questions contribute 0. A selection outside the answer list
// fails with *AnswerRangeError.
func ComputeScores(questions []Question, sel Selection) (Scores, error) {
	out := zeroScores()
	for _, q := range questions {
		idx, ok := sel[q.ID]
		if !ok {
			continue
		}
		if idx < 0 || idx >= len(q.Answers) {
			return nil, &AnswerRangeError{QuestionID: q.ID, Index: idx, Answers: len(q.Answers)}
		}
		out[q.Category] += q.Answers[idx].Score
	}
	return out, nil
}

// Percent returns score as a rounded percentage of max, or 0 when max is 0.
func Percent(score, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(max) * 100))
}
