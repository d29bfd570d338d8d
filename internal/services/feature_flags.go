package services

import (
	"context"

	"go.uber.org/zap"
)

// SmsNotificationFlag gates sending appointment reminders by SMS
const SmsNotificationFlag = "sms-notification-toggle"

// FlagEvaluator is the interface that wraps the remote feature flag evaluation
type FlagEvaluator interface {
	// EvaluateBoolean returns whether the flag is enabled, or an error if it could not be evaluated.
	EvaluateBoolean(ctx context.Context, flagKey string) (bool, error)
}

type featureFlags struct {
	client FlagEvaluator
	logger *zap.Logger
}

// NewFeatureFlags creates a feature flag gate. A nil client disables every flag.
func NewFeatureFlags(client FlagEvaluator, logger *zap.Logger) *featureFlags {
	return &featureFlags{
		client: client,
		logger: logger,
	}
}

// Enabled reports whether key is switched on. Evaluation failures count as disabled.
func (f *featureFlags) Enabled(ctx context.Context, key string) bool {
	if f.client == nil {
		f.logger.Warn("feature flag client not configured, flag disabled", zap.String("flag", key))
		return false
	}

	enabled, err := f.client.EvaluateBoolean(ctx, key)
	if err != nil {
		f.logger.Warn("failed to evaluate feature flag, flag disabled",
			zap.String("flag", key),
			zap.Error(err),
		)
		return false
	}
	return enabled
}
