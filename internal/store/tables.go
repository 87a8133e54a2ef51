package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/pmoquiz/ent/schema"
)

const (
	llmRequestTable = "llm_request_events"
	assessmentTable = "assessment_events"
)

var (
	// LLMRequestEventsTable is derived from entschema.LLMRequestEvent.
	LLMRequestEventsTable = tableFor(llmRequestTable, entschema.LLMRequestEvent{})
	// AssessmentEventsTable is derived from entschema.AssessmentEvent.
	AssessmentEventsTable = tableFor(assessmentTable, entschema.AssessmentEvent{})

	// Tables holds every table the store migrates.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		AssessmentEventsTable,
	}
)

// tableFor builds a migration table from an ent schema declaration: an
// auto-increment id primary key, the mixin fields, then the schema fields.
// Function defaults (time.Now) are left to the insert path.
func tableFor(name string, s ent.Interface) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &schema.Table{
		Name:       name,
		Columns:    []*schema.Column{id},
		PrimaryKey: []*schema.Column{id},
	}

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	byName := make(map[string]*schema.Column, len(fields)+1)
	byName["id"] = id
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			panic(fmt.Sprintf("store: table %s field %s: %v", name, d.Name, d.Err))
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
		}
		switch v := d.Default.(type) {
		case string, int, int64, bool:
			c.Default = v
		}
		t.Columns = append(t.Columns, c)
		byName[d.Name] = c
	}

	for _, ix := range indexes {
		d := ix.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			cols = append(cols, byName[fname])
		}
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    strings.ReplaceAll(name, "_", "") + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}

	return t
}
