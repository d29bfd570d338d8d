// Package flipt evaluates boolean feature flags against a Flipt server
package flipt

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.flipt.io/flipt/rpc/flipt/evaluation"
	sdk "go.flipt.io/flipt/sdk/go"
	sdkhttp "go.flipt.io/flipt/sdk/go/http"
	"go.uber.org/zap"
)

// Client evaluates flags in a single namespace
type Client struct {
	evaluation *sdk.Evaluation
	namespace  string
	logger     *zap.Logger
}

// NewClient creates a Flipt client over the HTTP transport. An empty token disables authentication.
func NewClient(httpClient *http.Client, baseURL, token, namespace string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	transport := sdkhttp.NewTransport(strings.TrimRight(baseURL, "/"), sdkhttp.WithHTTPClient(httpClient))
	var opts []sdk.Option
	if token != "" {
		opts = append(opts, sdk.WithAuthenticationProvider(sdk.StaticTokenAuthenticationProvider(token)))
	}

	return &Client{
		evaluation: sdk.New(transport, opts...).Evaluation(),
		namespace:  namespace,
		logger:     logger,
	}
}

// EvaluateBoolean returns whether flagKey is enabled.
//
// The flag key doubles as the entity id, so percentage rollouts give every caller the same answer.
func (c *Client) EvaluateBoolean(ctx context.Context, flagKey string) (bool, error) {
	resp, err := c.evaluation.Boolean(ctx, &evaluation.EvaluationRequest{
		NamespaceKey: c.namespace,
		FlagKey:      flagKey,
		EntityId:     flagKey,
		Context:      map[string]string{},
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate flag %s: %w", flagKey, err)
	}

	c.logger.Debug("evaluated feature flag",
		zap.String("namespace", c.namespace),
		zap.String("flag", flagKey),
		zap.Bool("enabled", resp.Enabled),
		zap.String("reason", resp.Reason.String()),
	)
	return resp.Enabled, nil
}
