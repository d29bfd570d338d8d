package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/probationsupervision/appointments-api/internal/errs"
	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

// ErrNotifyNotConfigured is returned when templates are requested but no Notify client was configured
var ErrNotifyNotConfigured = errors.New("notify client not configured")

// TemplateClient is the interface that wraps template retrieval from the notification provider
type TemplateClient interface {
	// GetTemplateByID fetches a template by id. An unknown id yields a NotFoundError.
	GetTemplateByID(ctx context.Context, templateID string) (*models.NotifyTemplate, error)
}

type smsTemplateResolver struct {
	client      TemplateClient
	templateIDs map[string]string
	logger      *zap.Logger
}

// NewSmsTemplateResolver creates a resolver over the configured template ids.
//
// "templateIDs" is keyed by "<language>-<variant>", e.g. "english-with-name-date".
func NewSmsTemplateResolver(client TemplateClient, templateIDs map[string]string, logger *zap.Logger) *smsTemplateResolver {
	return &smsTemplateResolver{
		client:      client,
		templateIDs: templateIDs,
		logger:      logger,
	}
}

// TemplateID returns the id of the template for a language, choosing the location
// variant when location is not blank.
func (r *smsTemplateResolver) TemplateID(language models.SmsLanguage, location string) (string, error) {
	variant := models.TemplateVariantWithNameDate
	if strings.TrimSpace(location) != "" {
		variant = models.TemplateVariantWithNameDateLocation
	}

	key := language.Key() + "-" + variant.Key()
	id, ok := r.templateIDs[key]
	if !ok || id == "" {
		return "", &errs.NotFoundError{
			Detail: fmt.Sprintf("No Notify template configured for Language: %s Variant: %s templateKey: %s", language, variant, key),
		}
	}
	return id, nil
}

// GetTemplate fetches the template for a language and optional location
func (r *smsTemplateResolver) GetTemplate(ctx context.Context, language models.SmsLanguage, location string) (*models.NotifyTemplate, error) {
	id, err := r.TemplateID(language, location)
	if err != nil {
		return nil, err
	}
	if r.client == nil {
		return nil, ErrNotifyNotConfigured
	}

	template, err := r.client.GetTemplateByID(ctx, id)
	if err != nil {
		r.logger.Error("failed to fetch notify template",
			zap.String("template_id", id),
			zap.String("language", string(language)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}
