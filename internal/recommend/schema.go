package recommend

import (
	"fmt"

	"github.com/abhisek/pmoquiz/internal/llm"
	"github.com/abhisek/pmoquiz/internal/quiz"
)

// RecommendationSchema requires one feedback string per category, keyed by
// the category label.
var RecommendationSchema = &llm.Schema{
	Name:        "pmo-recommendations",
	Description: "Per-category PMO maturity feedback",
	Definition:  recommendationDefinition(),
}

func recommendationDefinition() map[string]any {
	props := make(map[string]any, len(quiz.Categories()))
	required := make([]any, 0, len(quiz.Categories()))
	for _, c := range quiz.Categories() {
		props[string(c)] = map[string]any{
			"type":        "string",
			"description": fmt.Sprintf("Feedback for %s, including Insight, Follow-up Questions, and Next Step.", c),
		}
		required = append(required, string(c))
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}
