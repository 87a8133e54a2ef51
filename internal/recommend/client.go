// Package recommend asks the model for narrative feedback on a completed
// assessment.
package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/pmoquiz/internal/llm"
	"github.com/abhisek/pmoquiz/internal/quiz"
)

// Purpose tags recommendation requests in the LLM event log.
const Purpose = "recommendations"

var (
	// ErrGenerationFailed covers every failure of Generate.
	ErrGenerationFailed = errors.New("failed to get recommendations from AI service")

	// ErrMalformedResponse is the subset where the model answered but the
	// answer did not carry a string for every category.
	ErrMalformedResponse = fmt.Errorf("%w: malformed AI response", ErrGenerationFailed)
)

// Recommendations maps every category to its feedback text.
type Recommendations map[quiz.Category]string

// Clone returns an independent copy.
func (r Recommendations) Clone() Recommendations {
	if r == nil {
		return nil
	}
	out := make(Recommendations, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Labels converts to a label-keyed map for storage.
func (r Recommendations) Labels() map[string]string {
	if r == nil {
		return nil
	}
	out := make(map[string]string, len(r))
	for k, v := range r {
		out[string(k)] = v
	}
	return out
}

// FromLabels is the inverse of Labels. Unknown labels are dropped; a nil
// map stays nil.
func FromLabels(m map[string]string) Recommendations {
	if m == nil {
		return nil
	}
	out := make(Recommendations, len(m))
	for k, v := range m {
		if c := quiz.Category(k); c.Valid() {
			out[c] = v
		}
	}
	return out
}

// Client generates recommendations with a single structured-output call.
type Client struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewClient creates a recommendation client. A nil logger is allowed.
func NewClient(provider llm.Provider, cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{provider: provider, cfg: cfg, logger: logger}
}

// Generate returns feedback for every category or an error matching
// ErrGenerationFailed. It never returns a partial result and never retries.
func (c *Client) Generate(ctx context.Context, scores, maxScores quiz.Scores) (Recommendations, error) {
	if err := checkScores(scores, maxScores); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(scores, maxScores)},
		},
		Schema:      RecommendationSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		var truncated *llm.ErrMaxTokensExceeded
		switch {
		case errors.As(err, &invalid):
			c.logger.Warn("recommendation response rejected",
				zap.Strings("categories", invalid.Fields), zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		case errors.As(err, &truncated):
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	recs, err := decode(resp.Content)
	if err != nil {
		c.logger.Debug("recommendation response rejected",
			zap.Error(err), zap.Int("bytes", len(resp.Content)))
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return recs, nil
}

func checkScores(scores, maxScores quiz.Scores) error {
	for _, c := range quiz.Categories() {
		if _, ok := scores[c]; !ok {
			return fmt.Errorf("missing score for %q", c)
		}
		if _, ok := maxScores[c]; !ok {
			return fmt.Errorf("missing max score for %q", c)
		}
	}
	return nil
}

// decode accepts the content only if every category maps to a JSON string.
// Keys beyond the five categories are ignored.
func decode(content json.RawMessage) (Recommendations, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if raw == nil {
		return nil, errors.New("response is not an object")
	}

	out := make(Recommendations, len(quiz.Categories()))
	for _, c := range quiz.Categories() {
		v, ok := raw[string(c)]
		if !ok {
			return nil, fmt.Errorf("missing category %q", c)
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil || string(v) == "null" {
			return nil, fmt.Errorf("category %q is not a string", c)
		}
		out[c] = s
	}
	return out, nil
}
