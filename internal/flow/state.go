package flow

import (
	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/recommend"
)

// State is the screen the learner is on.
type State int

const (
	StateStart State = iota
	StateQuiz
	StateResults
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateQuiz:
		return "quiz"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Session is a read-only snapshot of the controller.
type Session struct {
	ID    string
	State State

	// Index is the position of the current question.
	Index     int
	Questions []quiz.Question

	Selections quiz.Selection

	// Scores is nil until the quiz is finished.
	Scores    quiz.Scores
	MaxScores quiz.Scores

	// Recommendations is nil while loading and after a failure.
	Recommendations recommend.Recommendations

	Loading bool

	// Error is the user-facing failure message, empty when none.
	Error string

	Generation uint64
}

// Current returns the question at Index.
func (s Session) Current() quiz.Question {
	return s.Questions[s.Index]
}

// Selected returns the answer chosen for the current question.
func (s Session) Selected() (int, bool) {
	idx, ok := s.Selections[s.Current().ID]
	return idx, ok
}

// IsLast reports whether the current question is the final one.
func (s Session) IsLast() bool {
	return s.Index == len(s.Questions)-1
}
