package llm

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-feedback",
		Description: "Feedback per area",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"Governance": map[string]any{"type": "string"},
				"Risk":       map[string]any{"type": "string"},
				"level":      map[string]any{"type": "string", "enum": []any{"low", "mid", "high"}},
			},
			"required":             []any{"Governance", "Risk"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"Governance":"**Insight:** ok","Risk":"**Insight:** fine","level":"mid"}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"Governance":"a","Risk":"b"}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required key", `{"Governance":"a"}`},
		{"non-string value", `{"Governance":"a","Risk":3}`},
		{"unknown key", `{"Governance":"a","Risk":"b","Extra":"c"}`},
		{"invalid enum", `{"Governance":"a","Risk":"b","level":"max"}`},
		{"malformed JSON", `{not json}`},
		{"array instead of object", `["a","b"]`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`plain text`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestCheckOutput_TruncatedStructuredOutput(t *testing.T) {
	req := Request{Schema: testSchema()}
	err := checkOutput(req, json.RawMessage(`{"Governance":"a","Ri`), "max_tokens")
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %v", err)
	}

	// Without a schema, truncation is the caller's concern.
	if err := checkOutput(Request{}, json.RawMessage(`partial`), "max_tokens"); err != nil {
		t.Fatalf("expected no error without schema, got: %v", err)
	}
}

func TestValidateResponse_Fields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"missing required key", `{"Governance":"a"}`, []string{"Risk"}},
		{"both missing", `{}`, []string{"Governance", "Risk"}},
		{"non-string value", `{"Governance":"a","Risk":3}`, []string{"Risk"}},
		{"null value", `{"Governance":null,"Risk":"b"}`, []string{"Governance"}},
		{"unknown key", `{"Governance":"a","Risk":"b","Extra":"c"}`, []string{"Extra"}},
		{"not an object", `["a"]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %v", err)
			}
			if !reflect.DeepEqual(invErr.Fields, tt.want) {
				t.Fatalf("fields = %v, want %v", invErr.Fields, tt.want)
			}
			for _, f := range tt.want {
				if !strings.Contains(err.Error(), f) {
					t.Errorf("error %q does not name %q", err, f)
				}
			}
		})
	}
}
