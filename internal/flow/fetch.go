package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/pmoquiz/internal/llm"
	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/recommend"
)

// DefaultTimeout bounds a recommendation call when none is configured.
const DefaultTimeout = 45 * time.Second

// Recommender produces feedback for a scored assessment.
type Recommender interface {
	Generate(ctx context.Context, scores, maxScores quiz.Scores) (recommend.Recommendations, error)
}

// Result is the outcome of Fetch, handed back to Controller.Resolve.
type Result struct {
	Generation      uint64
	Recommendations recommend.Recommendations
	Err             error
}

// Fetch runs req against rec. It returns when rec does, when timeout
// elapses, or when req goes stale, whichever happens first. It touches no
// controller state and may run on any goroutine.
func Fetch(ctx context.Context, rec Recommender, req Request, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(req.Context(), cancel)
	defer stop()

	ctx = llm.WithSession(ctx, req.SessionID)

	done := make(chan Result, 1)
	go func() {
		recs, err := rec.Generate(ctx, req.Scores, req.MaxScores)
		done <- Result{Generation: req.Generation, Recommendations: recs, Err: err}
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return Result{Generation: req.Generation, Err: fmt.Errorf("recommendations: %w", context.Cause(ctx))}
	}
}
