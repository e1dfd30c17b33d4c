package attractions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Repository = (*PostgresAttractionRepo)(nil)

// Repository provides read access to the attraction catalog.
type Repository interface {
	// List returns attractions matching the filter, sorted by rating descending.
	List(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error)

	// Get returns a single attraction by ID.
	// Returns ErrNotFound when the ID is unknown.
	Get(ctx context.Context, id int) (*types.Attraction, error)

	// GetByIDs returns the attractions whose IDs are in ids, preserving the
	// catalog's rating order. Unknown IDs are skipped silently.
	GetByIDs(ctx context.Context, ids []int) ([]types.Attraction, error)
}

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresAttractionRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresAttractionRepo(db DB, logger *slog.Logger) *PostgresAttractionRepo {
	return &PostgresAttractionRepo{
		logger: logger,
		db:     db,
	}
}

const attractionColumns = `attraction_id, name, category, region, rating, num_reviews,
       avg_cost_usd, duration_days, difficulty, best_season, altitude_meters, description`

func scanAttraction(row pgx.CollectableRow) (types.Attraction, error) {
	var a types.Attraction
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Category,
		&a.Region,
		&a.Rating,
		&a.NumReviews,
		&a.AvgCostUSD,
		&a.DurationDays,
		&a.Difficulty,
		&a.BestSeason,
		&a.AltitudeMeters,
		&a.Description,
	)
	return a, err
}

func (r *PostgresAttractionRepo) List(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "attractions"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "List"))
	l.DebugContext(ctx, "Listing attractions", slog.Any("filter", filter))

	// Build WHERE clause dynamically from non-zero filter fields
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argID))
		args = append(args, filter.Category)
		argID++
	}
	if filter.Region != "" {
		conditions = append(conditions, fmt.Sprintf("region = $%d", argID))
		args = append(args, filter.Region)
		argID++
	}
	if filter.MaxCost > 0 {
		conditions = append(conditions, fmt.Sprintf("avg_cost_usd <= $%d", argID))
		args = append(args, filter.MaxCost)
		argID++
	}
	if filter.MinRating > 0 {
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", argID))
		args = append(args, filter.MinRating)
		argID++
	}

	query := fmt.Sprintf("SELECT %s FROM attractions", attractionColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rating DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error listing attractions: %w", err)
	}

	list, err := pgx.CollectRows(rows, scanAttraction)
	if err != nil {
		l.ErrorContext(ctx, "Failed to scan attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row scan failed")
		return nil, fmt.Errorf("database error scanning attractions: %w", err)
	}

	span.SetStatus(codes.Ok, "Attractions listed")
	return list, nil
}

func (r *PostgresAttractionRepo) Get(ctx context.Context, id int) (*types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionRepo").Start(ctx, "Get", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "attractions"),
		attribute.Int("attraction.id", id),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Get"), slog.Int("attractionID", id))

	query := fmt.Sprintf("SELECT %s FROM attractions WHERE attraction_id = $1", attractionColumns)

	var a types.Attraction
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Category,
		&a.Region,
		&a.Rating,
		&a.NumReviews,
		&a.AvgCostUSD,
		&a.DurationDays,
		&a.Difficulty,
		&a.BestSeason,
		&a.AltitudeMeters,
		&a.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "Attraction not found")
			span.SetStatus(codes.Error, "Attraction not found")
			return nil, fmt.Errorf("attraction %d: %w", id, types.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to query attraction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching attraction: %w", err)
	}

	span.SetStatus(codes.Ok, "Attraction fetched")
	return &a, nil
}

func (r *PostgresAttractionRepo) GetByIDs(ctx context.Context, ids []int) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionRepo").Start(ctx, "GetByIDs", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "attractions"),
		attribute.Int("attraction.id_count", len(ids)),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetByIDs"))

	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM attractions WHERE attraction_id = ANY($1) ORDER BY rating DESC", attractionColumns)

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query attractions by IDs", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching attractions by IDs: %w", err)
	}

	list, err := pgx.CollectRows(rows, scanAttraction)
	if err != nil {
		l.ErrorContext(ctx, "Failed to scan attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row scan failed")
		return nil, fmt.Errorf("database error scanning attractions: %w", err)
	}

	span.SetStatus(codes.Ok, "Attractions fetched")
	return list, nil
}
