package recommend

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/pmoquiz/internal/llm"
	"github.com/abhisek/pmoquiz/internal/quiz"
)

func validJSON() json.RawMessage {
	return json.RawMessage(`{
		"Governance & Standards": "**Insight:** Solid.\n**Follow-up Questions:** Who owns it?\n**Next Step:** Publish it.",
		"Resource Management": "**Insight:** Ad hoc.",
		"Performance & Reporting": "**Insight:** Manual.",
		"Strategic Alignment": "**Insight:** Loose.",
		"Risk & Issue Management": "**Insight:** Reactive."
	}`)
}

func testScores() (quiz.Scores, quiz.Scores) {
	max := quiz.MaxScores(quiz.Bank())
	scores := quiz.Scores{}
	for _, c := range quiz.Categories() {
		scores[c] = 4
	}
	scores[quiz.Governance] = 8
	return scores, max
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validJSON()})
	c := NewClient(mock, DefaultConfig(), nil)

	scores, max := testScores()
	recs, err := c.Generate(t.Context(), scores, max)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("expected 5 recommendations, got %d", len(recs))
	}
	if !strings.HasPrefix(recs[quiz.Governance], "**Insight:** Solid.") {
		t.Errorf("governance = %q", recs[quiz.Governance])
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}

	req, _ := mock.LastCall()
	if req.Schema != RecommendationSchema {
		t.Error("expected recommendation schema on request")
	}
	if req.System != systemPrompt {
		t.Error("expected consultant system prompt")
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("max tokens = %d", req.MaxTokens)
	}
}

func TestGenerate_ExtraKeysIgnored(t *testing.T) {
	var m map[string]any
	if err := json.Unmarshal(validJSON(), &m); err != nil {
		t.Fatal(err)
	}
	m["Bonus"] = "extra"
	content, _ := json.Marshal(m)

	c := NewClient(llm.NewMockProvider(llm.MockResponse{Content: content}), DefaultConfig(), nil)
	scores, max := testScores()
	recs, err := c.Generate(t.Context(), scores, max)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 5 {
		t.Errorf("expected only the 5 categories, got %d", len(recs))
	}
}

func TestGenerate_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `here are your results`},
		{"array", `["a"]`},
		{"null", `null`},
		{"missing category", `{
			"Governance & Standards": "a",
			"Resource Management": "b",
			"Performance & Reporting": "c",
			"Strategic Alignment": "d"
		}`},
		{"non-string value", `{
			"Governance & Standards": "a",
			"Resource Management": 2,
			"Performance & Reporting": "c",
			"Strategic Alignment": "d",
			"Risk & Issue Management": "e"
		}`},
		{"null value", `{
			"Governance & Standards": "a",
			"Resource Management": "b",
			"Performance & Reporting": null,
			"Strategic Alignment": "d",
			"Risk & Issue Management": "e"
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			c := NewClient(mock, DefaultConfig(), nil)
			scores, max := testScores()

			recs, err := c.Generate(t.Context(), scores, max)
			if recs != nil {
				t.Errorf("expected nil recommendations, got %v", recs)
			}
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
			if !errors.Is(err, ErrGenerationFailed) {
				t.Errorf("expected ErrGenerationFailed, got %v", err)
			}
			if mock.CallCount() != 1 {
				t.Errorf("expected exactly 1 call, got %d", mock.CallCount())
			}
		})
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	cause := &llm.ErrProviderUnavailable{Err: errors.New("503")}
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: cause},
		llm.MockResponse{Content: validJSON()},
	)
	c := NewClient(mock, DefaultConfig(), nil)
	scores, max := testScores()

	_, err := c.Generate(t.Context(), scores, max)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Error("transport failure should not be reported as malformed")
	}
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Error("expected cause to be preserved")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected no retry, got %d calls", mock.CallCount())
	}
}

func TestGenerate_SchemaViolationIsMalformed(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: errors.New("missing properties")},
	})
	c := NewClient(mock, DefaultConfig(), nil)
	scores, max := testScores()

	_, err := c.Generate(t.Context(), scores, max)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGenerate_IncompleteInput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validJSON()})
	c := NewClient(mock, DefaultConfig(), nil)
	_, max := testScores()

	_, err := c.Generate(t.Context(), quiz.Scores{quiz.Governance: 1}, max)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no provider call, got %d", mock.CallCount())
	}
}

func TestGenerate_TagsPurpose(t *testing.T) {
	var got string
	p := purposeSpy{fn: func(p string) { got = p }, inner: llm.NewMockProvider(llm.MockResponse{Content: validJSON()})}
	c := NewClient(p, DefaultConfig(), nil)
	scores, max := testScores()

	if _, err := c.Generate(t.Context(), scores, max); err != nil {
		t.Fatal(err)
	}
	if got != Purpose {
		t.Errorf("purpose = %q, want %q", got, Purpose)
	}
}

func TestLabelsRoundTrip(t *testing.T) {
	recs := Recommendations{quiz.Governance: "a", quiz.RiskManagement: "b"}
	back := FromLabels(recs.Labels())
	if len(back) != 2 || back[quiz.Governance] != "a" || back[quiz.RiskManagement] != "b" {
		t.Errorf("round trip = %v", back)
	}
	if FromLabels(nil) != nil {
		t.Error("nil should stay nil")
	}
}

func TestGenerate_LogsRejectedCategories(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(`{"Strategic Alignment":"ok"}`),
			Fields:  []string{"Governance & Standards", "Risk & Issue Management"},
			Err:     errors.New("missing properties"),
		},
	})
	c := NewClient(mock, DefaultConfig(), zap.New(core))
	scores, max := testScores()

	_, err := c.Generate(t.Context(), scores, max)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}

	entries := logs.FilterMessage("recommendation response rejected").All()
	if len(entries) != 1 {
		t.Fatalf("expected one rejection log, got %d", len(entries))
	}
	got, _ := entries[0].ContextMap()["categories"].([]interface{})
	if len(got) != 2 || got[0] != "Governance & Standards" {
		t.Errorf("logged categories = %v", entries[0].ContextMap()["categories"])
	}
}
