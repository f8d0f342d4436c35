package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// eventRepo implements EventRepo with raw SQL over the shared connection.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_request_events
			(provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO generation_events
			(endpoint, topic, difficulty, success, defaults_used, duration_ms, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.Endpoint, data.Topic, data.Difficulty,
		data.Success, data.DefaultsUsed, data.DurationMs, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert generation event: %w", err)
	}
	return nil
}

const llmEventColumns = `id, timestamp, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message,
	request_body, response_body`

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	query, args := buildEventQuery("llm_request_events", llmEventColumns, opts, opts.Purpose != "")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var e LLMEvent
		if err := scanLLMEvent(rows, &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM llm_request_events WHERE id = ?", llmEventColumns), id)

	var e LLMEvent
	if err := scanLLMEvent(row, &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error) {
	query, args := buildEventQuery("generation_events",
		"id, timestamp, endpoint, topic, difficulty, success, defaults_used, duration_ms, error_message",
		opts, false)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}
	defer rows.Close()

	var events []GenerationEvent
	for rows.Next() {
		var e GenerationEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Endpoint, &e.Topic, &e.Difficulty,
			&e.Success, &e.DefaultsUsed, &e.DurationMs, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan generation event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0),
		       COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		FROM llm_request_events
		GROUP BY purpose
		ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var usage []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan purpose usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT model, COUNT(*),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events
		GROUP BY model
		ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var usage []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// buildEventQuery assembles a filtered SELECT ordered newest first.
func buildEventQuery(table, columns string, opts QueryOpts, filterPurpose bool) (string, []any) {
	var where []string
	var args []any

	if filterPurpose {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From)
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", columns, table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	return query, args
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(s scanner, e *LLMEvent) error {
	if err := s.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("scan LLM event: %w", err)
	}
	return nil
}
