// Package notify is a client for the GOV.UK Notify REST API
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/probationsupervision/appointments-api/internal/errs"
	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

// An API key is "<name>-<service id>-<secret>", where both ids are 36-character UUIDs
const (
	uuidLength      = 36
	minAPIKeyLength = 2*uuidLength + 1
)

// ErrInvalidAPIKey is returned when the API key does not contain a service id and secret
var ErrInvalidAPIKey = errors.New("invalid notify api key")

// Client calls the Notify API using a per-request signed bearer token
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceID  string
	secret     string
	now        func() time.Time
	logger     *zap.Logger
}

// NewClient creates a Notify client from an API key
func NewClient(httpClient *http.Client, apiKey, baseURL string, logger *zap.Logger) (*Client, error) {
	serviceID, secret, err := parseAPIKey(apiKey)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceID:  serviceID,
		secret:     secret,
		now:        time.Now,
		logger:     logger,
	}, nil
}

func parseAPIKey(apiKey string) (string, string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if len(apiKey) < minAPIKeyLength {
		return "", "", ErrInvalidAPIKey
	}
	n := len(apiKey)
	serviceID := apiKey[n-(2*uuidLength+1) : n-(uuidLength+1)]
	secret := apiKey[n-uuidLength:]
	return serviceID, secret, nil
}

// GetTemplateByID fetches the latest version of a template
func (c *Client) GetTemplateByID(ctx context.Context, templateID string) (*models.NotifyTemplate, error) {
	var template models.NotifyTemplate
	if err := c.do(ctx, http.MethodGet, "/v2/template/"+url.PathEscape(templateID), nil, &template); err != nil {
		if errors.Is(err, errs.ErrProviderNotFound) {
			return nil, errs.NewNotFound("Template", "id", templateID)
		}
		return nil, fmt.Errorf("failed to get template %s: %w", templateID, err)
	}
	return &template, nil
}

type smsRequest struct {
	PhoneNumber     string            `json:"phone_number"`
	TemplateID      string            `json:"template_id"`
	Personalisation map[string]string `json:"personalisation,omitempty"`
	Reference       string            `json:"reference,omitempty"`
}

// SendSms asks Notify to send a text message rendered from templateID
func (c *Client) SendSms(ctx context.Context, templateID, phoneNumber string, personalisation map[string]string, reference string) (*models.SmsNotification, error) {
	body, err := json.Marshal(smsRequest{
		PhoneNumber:     phoneNumber,
		TemplateID:      templateID,
		Personalisation: personalisation,
		Reference:       reference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sms request: %w", err)
	}

	var resp models.SmsNotification
	if err := c.do(ctx, http.MethodPost, "/v2/notifications/sms", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to send sms: %w", err)
	}
	return &resp, nil
}

func (c *Client) token() (string, error) {
	claims := jwt.MapClaims{
		"iss": c.serviceID,
		"iat": c.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign notify token: %w", err)
	}
	return signed, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	token, err := c.token()
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return errs.ErrProviderNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("notify request returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("notify returned status %d: %s", resp.StatusCode, notifyErrorMessage(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// notifyErrorMessage joins the messages of a Notify error payload
func notifyErrorMessage(body []byte) string {
	var payload struct {
		Errors []struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return strings.TrimSpace(string(body))
	}
	messages := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		messages = append(messages, e.Error+": "+e.Message)
	}
	return strings.Join(messages, "; ")
}
