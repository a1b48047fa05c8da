// Package pgstore provides a PostgreSQL implementation of record.Store.
package pgstore

import (
	"context"
	_ "embed"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/sift/internal/feedback"
)

var tracer = otel.Tracer("github.com/linnemanlabs/sift/internal/record/pgstore")

//go:embed schema.sql
var schema string

// Store persists feedback records in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema and returns a ready Store.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Append inserts one record in a single statement; id and created_at are
// assigned by the database.
func (s *Store) Append(ctx context.Context, rawText string, category feedback.Category, sentiment float64) (*feedback.Record, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Append", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "INSERT"),
	))
	defer span.End()

	rec := feedback.Record{
		RawText:   rawText,
		Category:  category,
		Sentiment: sentiment,
	}

	query := `INSERT INTO feedback_records (raw_text, category, sentiment)
		VALUES ($1, $2, $3) RETURNING id, created_at`
	if err := s.pool.QueryRow(ctx, query, rawText, string(category), sentiment).
		Scan(&rec.ID, &rec.CreatedAt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("insert record: %w", err)
	}

	return &rec, nil
}

// Recent returns up to limit records, newest-first by id.
func (s *Store) Recent(ctx context.Context, limit int) ([]feedback.Record, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Recent", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT id, raw_text, category, sentiment, created_at
		FROM feedback_records ORDER BY id DESC LIMIT $1`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []feedback.Record
	for rows.Next() {
		var rec feedback.Record
		var cat string
		if err := rows.Scan(&rec.ID, &rec.RawText, &cat, &rec.Sentiment, &rec.CreatedAt); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Category = feedback.Category(cat)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return out, nil
}
