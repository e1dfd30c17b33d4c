package conversion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/app/observability/metrics"
	"github.com/nepaltrails/trip-planner/internal/api/attractions"
	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Validation sentinels surfaced as 400s by the handler.
var (
	ErrMissingType  = fmt.Errorf("%w: request type is required", types.ErrValidation)
	ErrUnknownType  = fmt.Errorf("%w: unknown request type", types.ErrValidation)
	ErrMissingEmail = fmt.Errorf("%w: email address is required", types.ErrValidation)
)

// Result is the outcome of a conversion request.
type Result struct {
	Message   string
	LeadID    int
	EmailSent bool
}

type Service interface {
	Handle(ctx context.Context, req types.ConversionRequest) (*Result, error)
	ListLeads(ctx context.Context, status string, limit int) ([]types.Lead, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	repo       Repository
	mailer     Mailer
	catalog    attractions.Service
	adminEmail string
}

func NewService(repo Repository, mailer Mailer, catalog attractions.Service, adminEmail string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repo:       repo,
		mailer:     mailer,
		catalog:    catalog,
		adminEmail: adminEmail,
	}
}

// Handle captures the lead, then attempts delivery. Email failures never fail
// the request; they are recorded on the conversion row and the caller still
// gets a success response with email_sent false.
func (s *ServiceImpl) Handle(ctx context.Context, req types.ConversionRequest) (*Result, error) {
	ctx, span := otel.Tracer("ConversionService").Start(ctx, "Handle", trace.WithAttributes(
		attribute.String("request.type", req.Type),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Handle"), slog.String("requestType", req.Type))

	if req.Type == "" {
		span.SetStatus(codes.Error, "Missing request type")
		return nil, ErrMissingType
	}
	if req.Type != types.LeadTypeEmail && req.Type != types.LeadTypeExpert && req.Type != types.LeadTypeQuote {
		span.SetStatus(codes.Error, "Unknown request type")
		return nil, ErrUnknownType
	}

	email := req.UserData["email"]
	if email == "" {
		email = req.UserData["contact"]
	}
	if email == "" {
		span.SetStatus(codes.Error, "Missing email")
		return nil, ErrMissingEmail
	}

	name := req.UserData["name"]
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	lead := types.Lead{
		Name:          name,
		Email:         email,
		Phone:         req.UserData["phone"],
		LeadType:      req.Type,
		AttractionIDs: req.AttractionIDs,
		Metadata:      req.UserData,
	}
	leadID, err := s.repo.CreateLead(ctx, lead)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create lead", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lead creation failed")
		return nil, err
	}
	lead.ID = leadID

	emailSent, sendErr := s.deliver(ctx, lead)
	if sendErr != nil {
		l.ErrorContext(ctx, "Email delivery failed", slog.Int("leadID", leadID), slog.Any("error", sendErr))
		span.RecordError(sendErr)
	}

	now := time.Now().UTC()
	if emailSent {
		if err := s.repo.MarkEmailSent(ctx, leadID, now); err != nil {
			l.WarnContext(ctx, "Failed to mark lead email sent", slog.Any("error", err))
		}
		metrics.Get().EmailsSentTotal.Add(ctx, 1)
	}

	outcome := types.ConversionOutcome{
		LeadID:      leadID,
		RequestType: req.Type,
		EmailTo:     email,
		Status:      "sent",
	}
	if emailSent {
		outcome.SentAt = &now
	} else {
		outcome.Status = "failed"
		if sendErr != nil {
			outcome.ErrorMessage = sendErr.Error()
		}
	}
	if err := s.repo.RecordOutcome(ctx, outcome); err != nil {
		l.WarnContext(ctx, "Failed to record conversion outcome", slog.Any("error", err))
	}

	metrics.Get().ConversionRequestsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("type", req.Type)))
	span.SetStatus(codes.Ok, "Conversion handled")
	return &Result{
		Message:   responseMessage(req.Type, emailSent),
		LeadID:    leadID,
		EmailSent: emailSent,
	}, nil
}

func (s *ServiceImpl) deliver(ctx context.Context, lead types.Lead) (bool, error) {
	switch lead.LeadType {
	case types.LeadTypeEmail:
		if len(lead.AttractionIDs) > 0 {
			selected, err := s.catalog.GetAttractions(ctx, lead.AttractionIDs)
			if err != nil {
				return false, err
			}
			body, err := renderItineraryEmail(lead.Name, selected, summarize(selected))
			if err != nil {
				return false, err
			}
			subject := fmt.Sprintf("Your %d-Day Nepal Itinerary", totalDays(selected))
			if err := s.mailer.Send(ctx, []string{lead.Email}, subject, body); err != nil {
				return false, err
			}
			return true, nil
		}
		return s.sendConfirmation(ctx, lead)

	case types.LeadTypeExpert, types.LeadTypeQuote:
		// User confirmation is best effort; the admin notification decides
		// whether the delivery counts as sent.
		if _, err := s.sendConfirmation(ctx, lead); err != nil {
			s.logger.WarnContext(ctx, "Confirmation email failed",
				slog.Int("leadID", lead.ID), slog.Any("error", err))
		}
		subject, body, err := renderAdminNotification(lead)
		if err != nil {
			return false, err
		}
		if err := s.mailer.Send(ctx, []string{s.adminEmail}, subject, body); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *ServiceImpl) sendConfirmation(ctx context.Context, lead types.Lead) (bool, error) {
	subject, body, err := renderConfirmation(lead.Name, lead.LeadType)
	if err != nil {
		return false, err
	}
	if err := s.mailer.Send(ctx, []string{lead.Email}, subject, body); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ServiceImpl) ListLeads(ctx context.Context, status string, limit int) ([]types.Lead, error) {
	ctx, span := otel.Tracer("ConversionService").Start(ctx, "ListLeads", trace.WithAttributes(
		attribute.String("lead.status", status),
		attribute.Int("limit", limit),
	))
	defer span.End()

	if limit <= 0 || limit > 500 {
		limit = 50
	}

	leads, err := s.repo.ListLeads(ctx, status, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lead listing failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Leads listed")
	return leads, nil
}

func responseMessage(requestType string, emailSent bool) string {
	switch requestType {
	case types.LeadTypeEmail:
		if emailSent {
			return "Your itinerary has been sent to your email!"
		}
		return "Your itinerary is being prepared and will be sent shortly!"
	case types.LeadTypeExpert:
		return "A local travel expert will contact you within 24 hours."
	case types.LeadTypeQuote:
		return "A customized quote will be prepared and sent to you within 1-2 business days."
	}
	return "Request received successfully"
}

func totalDays(selected []types.Attraction) int {
	days := 0
	for _, a := range selected {
		days += a.DurationDays
	}
	return days
}

// summarize computes the raw selection totals used in the itinerary email.
// Unlike the day planner it does not add acclimatization or buffer days.
func summarize(selected []types.Attraction) types.ItinerarySummary {
	var totalCost float64
	regions := []string{}
	seen := map[string]bool{}
	for _, a := range selected {
		totalCost += a.AvgCostUSD
		if !seen[a.Region] {
			seen[a.Region] = true
			regions = append(regions, a.Region)
		}
	}
	avg := 0.0
	if len(selected) > 0 {
		avg = totalCost / float64(len(selected))
	}
	return types.ItinerarySummary{
		TotalDays:        totalDays(selected),
		TotalCost:        totalCost,
		AverageDailyCost: avg,
		AttractionsCount: len(selected),
		RegionsCovered:   regions,
	}
}
