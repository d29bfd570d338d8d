package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/probationsupervision/appointments-api/internal/errs"
	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

// TemplateResolver is the interface that wraps selection of the SMS template for a reminder
type TemplateResolver interface {
	// TemplateID returns the configured template id for the language and location variant.
	TemplateID(language models.SmsLanguage, location string) (string, error)
	// GetTemplate fetches the template body for the language and location variant.
	GetTemplate(ctx context.Context, language models.SmsLanguage, location string) (*models.NotifyTemplate, error)
}

type smsPreviewService struct {
	resolver TemplateResolver
	values   *templateValues
	logger   *zap.Logger
}

// NewSmsPreviewService creates a service rendering reminder text without sending it
func NewSmsPreviewService(resolver TemplateResolver, translator Translator, logger *zap.Logger) *smsPreviewService {
	return &smsPreviewService{
		resolver: resolver,
		values:   newTemplateValues(translator),
		logger:   logger,
	}
}

// GeneratePreview renders the English reminder, and the Welsh one when requested
func (s *smsPreviewService) GeneratePreview(ctx context.Context, req *models.SmsPreviewRequest) (*models.SmsPreviewResponse, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, errs.Validation("firstName is required")
	}
	if req.DateAndTimeOfAppointment.IsZero() {
		return nil, errs.Validation("dateAndTimeOfAppointment is required")
	}

	english, err := s.buildPreview(ctx, req, models.SmsLanguageEnglish)
	if err != nil {
		return nil, err
	}

	resp := &models.SmsPreviewResponse{EnglishSmsPreview: english}
	if req.IncludeWelshPreview {
		welsh, err := s.buildPreview(ctx, req, models.SmsLanguageWelsh)
		if err != nil {
			return nil, err
		}
		resp.WelshSmsPreview = &welsh
	}

	return resp, nil
}

func (s *smsPreviewService) buildPreview(ctx context.Context, req *models.SmsPreviewRequest, language models.SmsLanguage) (string, error) {
	template, err := s.resolver.GetTemplate(ctx, language, req.AppointmentLocation)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s template: %w", strings.ToLower(string(language)), err)
	}

	values := s.values.Build(language, req.FirstName, req.DateAndTimeOfAppointment, req.AppointmentLocation, req.AppointmentTypeCode)
	return substitute(template.Body, values), nil
}
