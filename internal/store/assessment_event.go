package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var assessmentColumns = []string{
	"id", "sequence", "timestamp", "session_id", "generation", "status",
	"scores", "max_scores", "recommendations", "error_message",
}

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	if data.SessionID == "" {
		return fmt.Errorf("save assessment event: session id is required")
	}
	if data.Status != StatusReady && data.Status != StatusFailed {
		return fmt.Errorf("save assessment event: unknown status %q", data.Status)
	}

	scores, err := json.Marshal(data.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	maxScores, err := json.Marshal(data.MaxScores)
	if err != nil {
		return fmt.Errorf("marshal max scores: %w", err)
	}
	var recs any
	if data.Recommendations != nil {
		b, err := json.Marshal(data.Recommendations)
		if err != nil {
			return fmt.Errorf("marshal recommendations: %w", err)
		}
		recs = string(b)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(assessmentTable).
		Columns(assessmentColumns[1:]...).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, int64(data.Generation), data.Status,
			string(scores), string(maxScores), recs, data.ErrorMessage,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	b := builder()
	t := b.Table(assessmentTable)
	sel := b.Select(t.Columns(assessmentColumns...)...).
		From(t).
		OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Status != "" {
		sel.Where(entsql.EQ(t.C("status"), opts.Status))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var out []AssessmentEvent
	for rows.Next() {
		e, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetAssessment(ctx context.Context, id int) (*AssessmentEvent, error) {
	b := builder()
	t := b.Table(assessmentTable)
	query, args := b.Select(t.Columns(assessmentColumns...)...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	e, err := scanAssessment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func scanAssessment(row rowScanner) (*AssessmentEvent, error) {
	var (
		e         AssessmentEvent
		gen       int64
		scores    string
		maxScores string
		recs      sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &gen, &e.Status,
		&scores, &maxScores, &recs, &e.ErrorMessage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assessment event: %w", err)
	}
	e.Generation = uint64(gen)

	if err := json.Unmarshal([]byte(scores), &e.Scores); err != nil {
		return nil, fmt.Errorf("decode scores of assessment %d: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(maxScores), &e.MaxScores); err != nil {
		return nil, fmt.Errorf("decode max scores of assessment %d: %w", e.ID, err)
	}
	if recs.Valid && recs.String != "" {
		if err := json.Unmarshal([]byte(recs.String), &e.Recommendations); err != nil {
			return nil, fmt.Errorf("decode recommendations of assessment %d: %w", e.ID, err)
		}
	}
	return &e, nil
}
