package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Repository = (*PostgresPreferenceRepo)(nil)

// Repository persists one preference record per session.
type Repository interface {
	// Upsert creates or overwrites the record for req.SessionID and bumps
	// the visit count on overwrite. Returns the row ID.
	Upsert(ctx context.Context, req types.SavePreferencesRequest) (int, error)

	// Load returns the record for a session.
	// Returns ErrNotFound when the session has never saved preferences.
	Load(ctx context.Context, sessionID string) (*types.PreferenceRecord, error)
}

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresPreferenceRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresPreferenceRepo(db DB, logger *slog.Logger) *PostgresPreferenceRepo {
	return &PostgresPreferenceRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresPreferenceRepo) Upsert(ctx context.Context, req types.SavePreferencesRequest) (int, error) {
	ctx, span := otel.Tracer("PreferenceRepo").Start(ctx, "Upsert", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_preferences"),
		attribute.String("session.id", req.SessionID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Upsert"), slog.String("sessionID", req.SessionID))
	l.DebugContext(ctx, "Saving user preferences")

	regions := req.Regions
	if regions == nil {
		regions = []string{}
	}
	regionsJSON, err := json.Marshal(regions)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Regions marshal failed")
		return 0, fmt.Errorf("failed to encode preferred regions: %w", err)
	}

	// Overwrite semantics: a re-save replaces every preference field and
	// bumps visit_count. Records are never merged.
	query := `
		INSERT INTO user_preferences
			(session_id, user_email, preferred_category, max_cost, difficulty, preferred_regions)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, 0), NULLIF($5, ''), $6)
		ON CONFLICT (session_id) DO UPDATE SET
			user_email         = COALESCE(NULLIF(EXCLUDED.user_email, ''), user_preferences.user_email),
			preferred_category = EXCLUDED.preferred_category,
			max_cost           = EXCLUDED.max_cost,
			difficulty         = EXCLUDED.difficulty,
			preferred_regions  = EXCLUDED.preferred_regions,
			visit_count        = user_preferences.visit_count + 1,
			updated_at         = now()
		RETURNING id
	`

	var id int
	err = r.db.QueryRow(ctx, query,
		req.SessionID, req.Email, req.Category, req.MaxCost, req.Difficulty, regionsJSON,
	).Scan(&id)
	if err != nil {
		l.ErrorContext(ctx, "Failed to upsert preferences", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPSERT failed")
		return 0, fmt.Errorf("database error saving preferences: %w", err)
	}

	l.DebugContext(ctx, "User preferences saved", slog.Int("preferenceID", id))
	span.SetStatus(codes.Ok, "Preferences saved")
	return id, nil
}

func (r *PostgresPreferenceRepo) Load(ctx context.Context, sessionID string) (*types.PreferenceRecord, error) {
	ctx, span := otel.Tracer("PreferenceRepo").Start(ctx, "Load", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_preferences"),
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Load"), slog.String("sessionID", sessionID))
	l.DebugContext(ctx, "Loading user preferences")

	query := `
		SELECT id, session_id, COALESCE(preferred_category, ''), COALESCE(max_cost, 0),
		       COALESCE(difficulty, ''), preferred_regions, visit_count, created_at, updated_at
		FROM user_preferences
		WHERE session_id = $1
	`

	var rec types.PreferenceRecord
	var regionsJSON []byte
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&rec.ID,
		&rec.SessionID,
		&rec.PreferredCategory,
		&rec.MaxCost,
		&rec.Difficulty,
		&regionsJSON,
		&rec.VisitCount,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Preferences not found")
			return nil, fmt.Errorf("preferences for session %s: %w", sessionID, types.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to query preferences", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error loading preferences: %w", err)
	}

	if len(regionsJSON) > 0 {
		if err := json.Unmarshal(regionsJSON, &rec.PreferredRegions); err != nil {
			l.WarnContext(ctx, "Failed to decode preferred regions", slog.Any("error", err))
			rec.PreferredRegions = nil
		}
	}

	span.SetStatus(codes.Ok, "Preferences loaded")
	return &rec, nil
}
