package conversion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Repository = (*PostgresLeadRepo)(nil)

// Repository persists leads and their delivery outcomes.
type Repository interface {
	CreateLead(ctx context.Context, lead types.Lead) (int, error)
	MarkEmailSent(ctx context.Context, leadID int, sentAt time.Time) error
	RecordOutcome(ctx context.Context, outcome types.ConversionOutcome) error
	ListLeads(ctx context.Context, status string, limit int) ([]types.Lead, error)
}

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresLeadRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresLeadRepo(db DB, logger *slog.Logger) *PostgresLeadRepo {
	return &PostgresLeadRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresLeadRepo) CreateLead(ctx context.Context, lead types.Lead) (int, error) {
	ctx, span := otel.Tracer("LeadRepo").Start(ctx, "CreateLead", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "leads"),
		attribute.String("lead.type", lead.LeadType),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateLead"), slog.String("leadType", lead.LeadType))

	var attractionIDs, metadata []byte
	var err error
	if len(lead.AttractionIDs) > 0 {
		if attractionIDs, err = json.Marshal(lead.AttractionIDs); err != nil {
			span.RecordError(err)
			return 0, fmt.Errorf("failed to encode attraction IDs: %w", err)
		}
	}
	if len(lead.Metadata) > 0 {
		if metadata, err = json.Marshal(lead.Metadata); err != nil {
			span.RecordError(err)
			return 0, fmt.Errorf("failed to encode lead metadata: %w", err)
		}
	}

	query := `
		INSERT INTO leads (name, email, phone, lead_type, attraction_ids, metadata, status)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id
	`

	var id int
	err = r.db.QueryRow(ctx, query,
		lead.Name, lead.Email, lead.Phone, lead.LeadType, attractionIDs, metadata, types.LeadStatusNew,
	).Scan(&id)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert lead", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return 0, fmt.Errorf("database error creating lead: %w", err)
	}

	l.DebugContext(ctx, "Lead created", slog.Int("leadID", id))
	span.SetStatus(codes.Ok, "Lead created")
	return id, nil
}

func (r *PostgresLeadRepo) MarkEmailSent(ctx context.Context, leadID int, sentAt time.Time) error {
	ctx, span := otel.Tracer("LeadRepo").Start(ctx, "MarkEmailSent", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "leads"),
		attribute.Int("lead.id", leadID),
	))
	defer span.End()

	query := `UPDATE leads SET email_sent = TRUE, email_sent_at = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, leadID, sentAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to mark lead email sent",
			slog.Int("leadID", leadID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return fmt.Errorf("database error updating lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "Lead not found")
		return fmt.Errorf("lead %d: %w", leadID, types.ErrNotFound)
	}

	span.SetStatus(codes.Ok, "Lead updated")
	return nil
}

func (r *PostgresLeadRepo) RecordOutcome(ctx context.Context, outcome types.ConversionOutcome) error {
	ctx, span := otel.Tracer("LeadRepo").Start(ctx, "RecordOutcome", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "conversion_requests"),
		attribute.Int("lead.id", outcome.LeadID),
		attribute.String("request.type", outcome.RequestType),
	))
	defer span.End()

	query := `
		INSERT INTO conversion_requests (lead_id, request_type, email_to, status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`

	_, err := r.db.Exec(ctx, query,
		outcome.LeadID, outcome.RequestType, outcome.EmailTo, outcome.Status, outcome.ErrorMessage, outcome.SentAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to record conversion outcome",
			slog.Int("leadID", outcome.LeadID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return fmt.Errorf("database error recording conversion: %w", err)
	}

	span.SetStatus(codes.Ok, "Outcome recorded")
	return nil
}

func (r *PostgresLeadRepo) ListLeads(ctx context.Context, status string, limit int) ([]types.Lead, error) {
	ctx, span := otel.Tracer("LeadRepo").Start(ctx, "ListLeads", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "leads"),
		attribute.String("lead.status", status),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "ListLeads"))

	query := `
		SELECT id, name, email, COALESCE(phone, ''), lead_type, attraction_ids, metadata,
		       status, COALESCE(notes, ''), created_at, email_sent, email_sent_at
		FROM leads
	`
	args := []any{}
	if status != "" && status != "all" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query leads", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error listing leads: %w", err)
	}
	defer rows.Close()

	var leads []types.Lead
	for rows.Next() {
		var lead types.Lead
		var attractionIDs, metadata []byte
		err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.LeadType,
			&attractionIDs, &metadata, &lead.Status, &lead.Notes,
			&lead.CreatedAt, &lead.EmailSent, &lead.EmailSentAt,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Row scan failed")
			return nil, fmt.Errorf("database error scanning lead: %w", err)
		}
		if len(attractionIDs) > 0 {
			if err := json.Unmarshal(attractionIDs, &lead.AttractionIDs); err != nil {
				l.WarnContext(ctx, "Failed to decode lead attraction IDs",
					slog.Int("leadID", lead.ID), slog.Any("error", err))
			}
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &lead.Metadata); err != nil {
				l.WarnContext(ctx, "Failed to decode lead metadata",
					slog.Int("leadID", lead.ID), slog.Any("error", err))
			}
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Rows iteration failed")
		return nil, fmt.Errorf("database error listing leads: %w", err)
	}

	span.SetAttributes(attribute.Int("leads.count", len(leads)))
	span.SetStatus(codes.Ok, "Leads listed")
	return leads, nil
}
