package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Repository = (*PostgresAnalyticsRepo)(nil)

type Repository interface {
	Track(ctx context.Context, event types.AnalyticsEvent) error
}

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresAnalyticsRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresAnalyticsRepo(db DB, logger *slog.Logger) *PostgresAnalyticsRepo {
	return &PostgresAnalyticsRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresAnalyticsRepo) Track(ctx context.Context, event types.AnalyticsEvent) error {
	ctx, span := otel.Tracer("AnalyticsRepo").Start(ctx, "Track", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "analytics"),
		attribute.String("recommendation.type", event.RecommendationType),
	))
	defer span.End()

	var prefs []byte
	if len(event.Preferences) > 0 {
		var err error
		if prefs, err = json.Marshal(event.Preferences); err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to encode event preferences: %w", err)
		}
	}

	query := `
		INSERT INTO analytics (session_id, recommendation_type, attraction_id, clicked, converted, user_preferences)
		VALUES (NULLIF($1, ''), NULLIF($2, ''), NULLIF($3, 0), $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		event.SessionID, event.RecommendationType, event.AttractionID,
		event.Clicked, event.Converted, prefs,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert analytics event", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return fmt.Errorf("database error tracking analytics: %w", err)
	}

	span.SetStatus(codes.Ok, "Event tracked")
	return nil
}
