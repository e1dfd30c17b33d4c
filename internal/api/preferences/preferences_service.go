package preferences

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// ErrMissingSession means the request carried no session identifier.
var ErrMissingSession = fmt.Errorf("%w: session_id is required", types.ErrValidation)

type Service interface {
	Save(ctx context.Context, req types.SavePreferencesRequest) (int, error)
	Load(ctx context.Context, sessionID string) (*types.PreferenceRecord, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) Save(ctx context.Context, req types.SavePreferencesRequest) (int, error) {
	ctx, span := otel.Tracer("PreferenceService").Start(ctx, "Save", trace.WithAttributes(
		attribute.String("session.id", req.SessionID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Save"), slog.String("sessionID", req.SessionID))

	if strings.TrimSpace(req.SessionID) == "" {
		span.SetStatus(codes.Error, "Missing session_id")
		return 0, ErrMissingSession
	}

	id, err := s.repo.Upsert(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to save preferences", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Save failed")
		return 0, err
	}

	span.SetStatus(codes.Ok, "Preferences saved")
	return id, nil
}

func (s *ServiceImpl) Load(ctx context.Context, sessionID string) (*types.PreferenceRecord, error) {
	ctx, span := otel.Tracer("PreferenceService").Start(ctx, "Load", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	if strings.TrimSpace(sessionID) == "" {
		span.SetStatus(codes.Error, "Missing session_id")
		return nil, ErrMissingSession
	}

	rec, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Load failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Preferences loaded")
	return rec, nil
}
