// Package flow drives one assessment from the start screen through the
// quiz to the results and back again on retake.
package flow

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/recommend"
)

// FailureMessage is shown in place of recommendations when generation fails.
const FailureMessage = "Sorry, we couldn't generate your personalized recommendations. Please try again later."

// ErrInvalidState is returned when an action does not apply to the current
// state.
var ErrInvalidState = errors.New("action not valid in current state")

// Request is one pending recommendation call. Generation identifies the
// session instance it was issued for.
type Request struct {
	Generation uint64
	SessionID  string
	Scores     quiz.Scores
	MaxScores  quiz.Scores

	ctx context.Context
}

// Context is cancelled once the request becomes stale.
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Controller owns the mutable session. It is not safe for concurrent use;
// the UI event loop serialises every call.
type Controller struct {
	questions []quiz.Question
	maxScores quiz.Scores
	logger    *zap.Logger

	state      State
	sessionID  string
	index      int
	selections quiz.Selection
	scores     quiz.Scores
	recs       recommend.Recommendations
	loading    bool
	errMsg     string
	generation uint64
	cancel     context.CancelFunc
}

// New creates a controller on the start screen. Max scores are computed
// once from questions, which must not be empty.
func New(questions []quiz.Question, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		questions:  questions,
		maxScores:  quiz.MaxScores(questions),
		logger:     logger,
		state:      StateStart,
		selections: quiz.Selection{},
	}
}

// Start moves from the start screen to the first question under a new
// session ID.
func (c *Controller) Start() error {
	if c.state != StateStart {
		return fmt.Errorf("start from %s: %w", c.state, ErrInvalidState)
	}
	c.state = StateQuiz
	c.index = 0
	c.sessionID = uuid.NewString()
	c.logger.Info("assessment started", zap.String("session_id", c.sessionID))
	return nil
}

// Select records answerIndex for the current question, replacing any
// earlier choice.
func (c *Controller) Select(answerIndex int) error {
	if c.state != StateQuiz {
		return fmt.Errorf("select in %s: %w", c.state, ErrInvalidState)
	}
	q := c.questions[c.index]
	if answerIndex < 0 || answerIndex >= len(q.Answers) {
		return &quiz.AnswerRangeError{QuestionID: q.ID, Index: answerIndex, Answers: len(q.Answers)}
	}
	c.selections[q.ID] = answerIndex
	return nil
}

// CanAdvance reports whether the current question has a selection.
func (c *Controller) CanAdvance() bool {
	if c.state != StateQuiz {
		return false
	}
	_, ok := c.selections[c.questions[c.index].ID]
	return ok
}

// Next moves to the following question. On the last question it finishes
// the quiz instead and returns the recommendation request with true.
// The answered-question gate is left to the caller.
func (c *Controller) Next() (Request, bool) {
	if c.state != StateQuiz {
		return Request{}, false
	}
	if c.index < len(c.questions)-1 {
		c.index++
		return Request{}, false
	}
	req, err := c.Finish()
	if err != nil {
		c.logger.Error("finish quiz", zap.Error(err))
		return Request{}, false
	}
	return req, true
}

// Prev moves to the previous question unless already on the first.
func (c *Controller) Prev() {
	if c.state == StateQuiz && c.index > 0 {
		c.index--
	}
}

// Finish switches to results, computes scores and returns the request the
// caller must run with Fetch. Unanswered questions score 0.
func (c *Controller) Finish() (Request, error) {
	if c.state != StateQuiz {
		return Request{}, fmt.Errorf("finish from %s: %w", c.state, ErrInvalidState)
	}

	scores, err := quiz.ComputeScores(c.questions, c.selections)
	if err != nil {
		return Request{}, fmt.Errorf("compute scores: %w", err)
	}

	c.state = StateResults
	c.loading = true
	c.errMsg = ""
	c.recs = nil
	c.scores = scores
	c.generation++

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.logger.Info("assessment finished",
		zap.String("session_id", c.sessionID),
		zap.Uint64("generation", c.generation),
		zap.Any("scores", scores.Labels()))

	return Request{
		Generation: c.generation,
		SessionID:  c.sessionID,
		Scores:     scores.Clone(),
		MaxScores:  c.maxScores.Clone(),
		ctx:        ctx,
	}, nil
}

// Resolve commits the outcome of the request issued for generation gen.
// It returns false, changing nothing, when the result is stale: the
// session was reset or the result was already committed.
func (c *Controller) Resolve(gen uint64, recs recommend.Recommendations, err error) bool {
	if gen != c.generation || c.state != StateResults || !c.loading {
		c.logger.Debug("stale recommendation result dropped",
			zap.Uint64("generation", gen), zap.Uint64("current", c.generation))
		return false
	}

	c.loading = false
	c.releaseRequest()
	if err != nil {
		c.logger.Warn("recommendation failed",
			zap.String("session_id", c.sessionID), zap.Error(err))
		c.recs = nil
		c.errMsg = FailureMessage
		return true
	}
	c.recs = recs.Clone()
	return true
}

// Retake resets the session to the start screen. Any in-flight request is
// cancelled and its result will be ignored.
func (c *Controller) Retake() {
	c.releaseRequest()
	c.generation++
	c.state = StateStart
	c.index = 0
	c.selections = quiz.Selection{}
	c.scores = nil
	c.recs = nil
	c.loading = false
	c.errMsg = ""
	c.logger.Info("assessment reset", zap.String("session_id", c.sessionID))
	c.sessionID = ""
}

func (c *Controller) releaseRequest() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Session returns a snapshot. Its maps are copies; Questions is shared and
// must be treated as read-only.
func (c *Controller) Session() Session {
	return Session{
		ID:              c.sessionID,
		State:           c.state,
		Index:           c.index,
		Questions:       c.questions,
		Selections:      maps.Clone(c.selections),
		Scores:          c.scores.Clone(),
		MaxScores:       c.maxScores.Clone(),
		Recommendations: c.recs.Clone(),
		Loading:         c.loading,
		Error:           c.errMsg,
		Generation:      c.generation,
	}
}
