package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AssessmentEvent records a finished assessment once its recommendation
// request has resolved, successfully or not.
type AssessmentEvent struct {
	ent.Schema
}

func (AssessmentEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AssessmentEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID assigned when the quiz started"),
		field.Int64("generation").
			Default(0).
			Comment("Flow generation the outcome belongs to"),
		field.String("status").
			NotEmpty().
			Comment("ready or failed"),
		field.JSON("scores", map[string]int{}).
			Comment("Category label to achieved score"),
		field.JSON("max_scores", map[string]int{}).
			Comment("Category label to maximum score"),
		field.JSON("recommendations", map[string]string{}).
			Optional().
			Comment("Category label to feedback text"),
		field.String("error_message").
			Default(""),
	}
}

func (AssessmentEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("status"),
	}
}
