package llm

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

// categorySchema has the shape of the recommendation schema: one required
// string per assessment category.
func categorySchema() *Schema {
	props := map[string]any{}
	for _, c := range testCategories {
		props[c] = map[string]any{"type": "string", "description": "Feedback for " + c}
	}
	return &Schema{
		Name:        "pmo-recommendations",
		Description: "Feedback per category",
		Definition: map[string]any{
			"type":                 "object",
			"properties":           props,
			"required":             testCategories,
			"additionalProperties": false,
		},
	}
}

var testCategories = []string{
	"Governance & Standards",
	"Resource Management",
	"Performance & Reporting",
	"Strategic Alignment",
	"Risk & Issue Management",
}

func TestPropertyOrder(t *testing.T) {
	def := map[string]any{
		"properties": map[string]any{"b": 1, "a": 1, "z": 1, "y": 1},
		"required":   []any{"z", "b", "missing", "z"},
	}
	want := []string{"z", "b", "a", "y"}
	if got := propertyOrder(def); !reflect.DeepEqual(got, want) {
		t.Fatalf("propertyOrder = %v, want %v", got, want)
	}
	if got := propertyOrder(map[string]any{"type": "string"}); len(got) != 0 {
		t.Fatalf("expected no properties, got %v", got)
	}
}

func TestStrictDefinition(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"Risk Management": map[string]any{"type": "string"},
			"notes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object", "properties": map[string]any{"text": map[string]any{"type": "string"}}},
			},
		},
		"required": []string{"Risk Management"},
	}

	got := strictDefinition(def)
	if !reflect.DeepEqual(got["required"], []string{"Risk Management", "notes"}) {
		t.Fatalf("required = %v", got["required"])
	}
	if got["additionalProperties"] != false {
		t.Fatalf("expected additionalProperties false, got %v", got["additionalProperties"])
	}
	items := got["properties"].(map[string]any)["notes"].(map[string]any)["items"].(map[string]any)
	if items["additionalProperties"] != false || !reflect.DeepEqual(items["required"], []string{"text"}) {
		t.Fatalf("nested object not strict: %v", items)
	}
	if _, ok := def["additionalProperties"]; ok {
		t.Fatal("input definition was modified")
	}
}

func TestMarshalOrdered_KeepsCategoryOrder(t *testing.T) {
	b, err := marshalOrdered(strictDefinition(categorySchema().Definition))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, b)
	}
	if len(decoded["properties"].(map[string]any)) != len(testCategories) {
		t.Fatalf("unexpected properties in %s", b)
	}

	props := string(b[strings.Index(string(b), `"properties"`):])
	last := -1
	for _, c := range testCategories {
		i := strings.Index(props, `"`+c+`":`)
		if i < 0 || i < last {
			t.Fatalf("category %q out of order in %s", c, props)
		}
		last = i
	}
}

func TestStringList(t *testing.T) {
	if got := stringList([]any{"a", 1, "b"}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
	if got := stringList([]string{"x"}); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("got %v", got)
	}
	if got := stringList("x"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
