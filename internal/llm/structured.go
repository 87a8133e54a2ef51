package llm

import (
	"bytes"
	"encoding/json"
	"slices"
)

// strictDefinition returns a copy of def in the form strict structured
// output expects: every object lists all its properties as required and
// rejects unknown keys. The original required order comes first.
func strictDefinition(def map[string]any) map[string]any {
	out := make(map[string]any, len(def)+2)
	for k, v := range def {
		out[k] = v
	}

	if props, ok := def["properties"].(map[string]any); ok {
		strict := make(map[string]any, len(props))
		for name, p := range props {
			if pd, ok := p.(map[string]any); ok {
				strict[name] = strictDefinition(pd)
			} else {
				strict[name] = p
			}
		}
		out["properties"] = strict
		out["required"] = propertyOrder(def)
		out["additionalProperties"] = false
	}
	if items, ok := def["items"].(map[string]any); ok {
		out["items"] = strictDefinition(items)
	}
	return out
}

// propertyOrder returns the object's property names: those in "required"
// first, in listed order, then the rest sorted.
func propertyOrder(def map[string]any) []string {
	props, _ := def["properties"].(map[string]any)
	var order []string
	seen := make(map[string]bool, len(props))
	for _, r := range stringList(def["required"]) {
		if _, ok := props[r]; ok && !seen[r] {
			order = append(order, r)
			seen[r] = true
		}
	}
	var rest []string
	for name := range props {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

// marshalOrdered encodes a schema definition with object properties in
// propertyOrder, so providers that follow schema key order emit the
// categories as listed.
func marshalOrdered(def map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeSchema(&buf, def); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSchema(buf *bytes.Buffer, def map[string]any) error {
	keys := make([]string, 0, len(def))
	for k := range def {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')

		v := def[k]
		props, isProps := v.(map[string]any)
		switch {
		case k == "properties" && isProps:
			buf.WriteByte('{')
			for j, name := range propertyOrder(def) {
				if j > 0 {
					buf.WriteByte(',')
				}
				if err := writeJSON(buf, name); err != nil {
					return err
				}
				buf.WriteByte(':')
				if err := writeValue(buf, props[name]); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
		default:
			if err := writeValue(buf, v); err != nil {
				return err
			}
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	if m, ok := v.(map[string]any); ok {
		return writeSchema(buf, m)
	}
	return writeJSON(buf, v)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}

// stringList accepts both []any (decoded JSON) and []string (Go literals).
func stringList(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		var out []string
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
