package conversion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nepaltrails/trip-planner/app/observability/metrics"
	"github.com/nepaltrails/trip-planner/internal/types"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) CreateLead(ctx context.Context, lead types.Lead) (int, error) {
	args := m.Called(ctx, lead)
	return args.Int(0), args.Error(1)
}

func (m *MockLeadRepository) MarkEmailSent(ctx context.Context, leadID int, sentAt time.Time) error {
	args := m.Called(ctx, leadID, sentAt)
	return args.Error(0)
}

func (m *MockLeadRepository) RecordOutcome(ctx context.Context, outcome types.ConversionOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

func (m *MockLeadRepository) ListLeads(ctx context.Context, status string, limit int) ([]types.Lead, error) {
	args := m.Called(ctx, status, limit)
	leads, _ := args.Get(0).([]types.Lead)
	return leads, args.Error(1)
}

var _ Repository = (*MockLeadRepository)(nil)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

var _ Mailer = (*MockMailer)(nil)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListAttractions(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]types.Attraction)
	return list, args.Error(1)
}

func (m *MockCatalogService) GetAttraction(ctx context.Context, id int) (*types.Attraction, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*types.Attraction)
	return a, args.Error(1)
}

func (m *MockCatalogService) GetAttractions(ctx context.Context, ids []int) ([]types.Attraction, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]types.Attraction)
	return list, args.Error(1)
}

func setupConversionServiceTest(t *testing.T) (*ServiceImpl, *MockLeadRepository, *MockMailer, *MockCatalogService) {
	t.Helper()
	metrics.InitAppMetrics()

	mockRepo := new(MockLeadRepository)
	mockMailer := new(MockMailer)
	mockCatalog := new(MockCatalogService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(mockRepo, mockMailer, mockCatalog, "admin@nepaltrails.com", logger)
	return service, mockRepo, mockMailer, mockCatalog
}

func TestConversionService_Handle_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing type", func(t *testing.T) {
		service, mockRepo, _, _ := setupConversionServiceTest(t)

		_, err := service.Handle(ctx, types.ConversionRequest{})
		assert.ErrorIs(t, err, ErrMissingType)
		mockRepo.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
	})

	t.Run("unknown type", func(t *testing.T) {
		service, _, _, _ := setupConversionServiceTest(t)

		_, err := service.Handle(ctx, types.ConversionRequest{Type: "telegram"})
		assert.ErrorIs(t, err, ErrUnknownType)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("missing email", func(t *testing.T) {
		service, _, _, _ := setupConversionServiceTest(t)

		_, err := service.Handle(ctx, types.ConversionRequest{
			Type:     types.LeadTypeEmail,
			UserData: map[string]string{"name": "Asha"},
		})
		assert.ErrorIs(t, err, ErrMissingEmail)
	})

	t.Run("contact field doubles as email", func(t *testing.T) {
		service, mockRepo, mockMailer, _ := setupConversionServiceTest(t)
		mockRepo.On("CreateLead", ctx, mock.MatchedBy(func(l types.Lead) bool {
			return l.Email == "asha@example.com" && l.Name == "asha"
		})).Return(1, nil).Once()
		mockMailer.On("Send", ctx, []string{"asha@example.com"}, mock.Anything, mock.Anything).Return(nil).Once()
		mockRepo.On("MarkEmailSent", ctx, 1, mock.Anything).Return(nil).Once()
		mockRepo.On("RecordOutcome", ctx, mock.Anything).Return(nil).Once()

		res, err := service.Handle(ctx, types.ConversionRequest{
			Type:     types.LeadTypeEmail,
			UserData: map[string]string{"contact": "asha@example.com"},
		})
		require.NoError(t, err)
		assert.True(t, res.EmailSent)
		mockRepo.AssertExpectations(t)
	})
}

func TestConversionService_Handle_EmailItinerary(t *testing.T) {
	ctx := context.Background()

	selected := []types.Attraction{
		{ID: 1, Name: "Everest Base Camp Trek", Region: "Everest Region", DurationDays: 14, AvgCostUSD: 1500},
		{ID: 3, Name: "Boudhanath Stupa", Region: "Kathmandu Valley", DurationDays: 1, AvgCostUSD: 5},
	}

	t.Run("sends itinerary email and records outcome", func(t *testing.T) {
		service, mockRepo, mockMailer, mockCatalog := setupConversionServiceTest(t)
		mockRepo.On("CreateLead", ctx, mock.Anything).Return(42, nil).Once()
		mockCatalog.On("GetAttractions", ctx, []int{1, 3}).Return(selected, nil).Once()
		mockMailer.On("Send", ctx, []string{"asha@example.com"}, "Your 15-Day Nepal Itinerary", mock.Anything).
			Return(nil).Once()
		mockRepo.On("MarkEmailSent", ctx, 42, mock.Anything).Return(nil).Once()
		mockRepo.On("RecordOutcome", ctx, mock.MatchedBy(func(o types.ConversionOutcome) bool {
			return o.LeadID == 42 && o.Status == "sent" && o.SentAt != nil
		})).Return(nil).Once()

		res, err := service.Handle(ctx, types.ConversionRequest{
			Type:          types.LeadTypeEmail,
			UserData:      map[string]string{"email": "asha@example.com", "name": "Asha"},
			AttractionIDs: []int{1, 3},
		})
		require.NoError(t, err)
		assert.Equal(t, 42, res.LeadID)
		assert.True(t, res.EmailSent)
		assert.Equal(t, "Your itinerary has been sent to your email!", res.Message)
		mockRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("mailer failure still succeeds with email_sent false", func(t *testing.T) {
		service, mockRepo, mockMailer, mockCatalog := setupConversionServiceTest(t)
		mockRepo.On("CreateLead", ctx, mock.Anything).Return(43, nil).Once()
		mockCatalog.On("GetAttractions", ctx, []int{1, 3}).Return(selected, nil).Once()
		mockMailer.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp: connection refused")).Once()
		mockRepo.On("RecordOutcome", ctx, mock.MatchedBy(func(o types.ConversionOutcome) bool {
			return o.LeadID == 43 && o.Status == "failed" && o.ErrorMessage != ""
		})).Return(nil).Once()

		res, err := service.Handle(ctx, types.ConversionRequest{
			Type:          types.LeadTypeEmail,
			UserData:      map[string]string{"email": "asha@example.com"},
			AttractionIDs: []int{1, 3},
		})
		require.NoError(t, err)
		assert.False(t, res.EmailSent)
		assert.Equal(t, "Your itinerary is being prepared and will be sent shortly!", res.Message)
		mockRepo.AssertNotCalled(t, "MarkEmailSent", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("no selection falls back to confirmation email", func(t *testing.T) {
		service, mockRepo, mockMailer, mockCatalog := setupConversionServiceTest(t)
		mockRepo.On("CreateLead", ctx, mock.Anything).Return(44, nil).Once()
		mockMailer.On("Send", ctx, []string{"asha@example.com"}, "Your Itinerary is on the way!", mock.Anything).
			Return(nil).Once()
		mockRepo.On("MarkEmailSent", ctx, 44, mock.Anything).Return(nil).Once()
		mockRepo.On("RecordOutcome", ctx, mock.Anything).Return(nil).Once()

		res, err := service.Handle(ctx, types.ConversionRequest{
			Type:     types.LeadTypeEmail,
			UserData: map[string]string{"email": "asha@example.com"},
		})
		require.NoError(t, err)
		assert.True(t, res.EmailSent)
		mockCatalog.AssertNotCalled(t, "GetAttractions", mock.Anything, mock.Anything)
	})
}

func TestConversionService_Handle_ExpertAndQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("expert request notifies admin", func(t *testing.T) {
		service, mockRepo, mockMailer, _ := setupConversionServiceTest(t)
		mockRepo.On("CreateLead", ctx, mock.Anything).Return(50, nil).Once()
		mockMailer.On("Send", ctx, []string{"asha@example.com"}, "Expert Consultation Request Received", mock.Anything).
			Return(nil).Once()
		mockMailer.On("Send", ctx, []string{"admin@nepaltrails.com"}, mock.Anything, mock.Anything).
			Return(nil).Once()
		mockRepo.On("MarkEmailSent", ctx, 50, mock.Anything).Return(nil).Once()
		mockRepo.On("RecordOutcome", ctx, mock.Anything).Return(nil).Once()

		res, err := service.Handle(ctx, types.ConversionRequest{
			Type:     types.LeadTypeExpert,
			UserData: map[string]string{"email": "asha@example.com", "name": "Asha"},
		})
		require.NoError(t, err)
		assert.True(t, res.EmailSent)
		assert.Equal(t, "A local travel expert will contact you within 24 hours.", res.Message)
		mockMailer.AssertExpectations(t)
	})

	t.Run("quote confirmation failure is tolerated when admin notification lands", func(t *testing.T) {
		service, mockRepo, mockMailer, _ := setupConversionServiceTest(t)
		mockRepo.On("CreateLead", ctx, mock.Anything).Return(51, nil).Once()
		mockMailer.On("Send", ctx, []string{"asha@example.com"}, "Quote Request Received", mock.Anything).
			Return(errors.New("mailbox full")).Once()
		mockMailer.On("Send", ctx, []string{"admin@nepaltrails.com"}, mock.Anything, mock.Anything).
			Return(nil).Once()
		mockRepo.On("MarkEmailSent", ctx, 51, mock.Anything).Return(nil).Once()
		mockRepo.On("RecordOutcome", ctx, mock.Anything).Return(nil).Once()

		res, err := service.Handle(ctx, types.ConversionRequest{
			Type:     types.LeadTypeQuote,
			UserData: map[string]string{"email": "asha@example.com"},
		})
		require.NoError(t, err)
		assert.True(t, res.EmailSent)
		assert.Equal(t, "A customized quote will be prepared and sent to you within 1-2 business days.", res.Message)
	})

	t.Run("lead creation failure aborts", func(t *testing.T) {
		service, mockRepo, mockMailer, _ := setupConversionServiceTest(t)
		dbErr := errors.New("database error creating lead")
		mockRepo.On("CreateLead", ctx, mock.Anything).Return(0, dbErr).Once()

		_, err := service.Handle(ctx, types.ConversionRequest{
			Type:     types.LeadTypeExpert,
			UserData: map[string]string{"email": "asha@example.com"},
		})
		assert.ErrorIs(t, err, dbErr)
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestConversionService_ListLeads(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps out-of-range limits", func(t *testing.T) {
		service, mockRepo, _, _ := setupConversionServiceTest(t)
		mockRepo.On("ListLeads", ctx, "new", 50).Return([]types.Lead{}, nil).Twice()

		_, err := service.ListLeads(ctx, "new", 0)
		require.NoError(t, err)
		_, err = service.ListLeads(ctx, "new", 9999)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("passes status and valid limit through", func(t *testing.T) {
		service, mockRepo, _, _ := setupConversionServiceTest(t)
		leads := []types.Lead{{ID: 1, Email: "asha@example.com", LeadType: types.LeadTypeQuote}}
		mockRepo.On("ListLeads", ctx, "", 25).Return(leads, nil).Once()

		got, err := service.ListLeads(ctx, "", 25)
		require.NoError(t, err)
		assert.Equal(t, leads, got)
	})
}
