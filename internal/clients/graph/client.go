// Package graph is a narrow Microsoft Graph client covering calendar events and directory users.
package graph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/probationsupervision/appointments-api/internal/errs"
	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	graphScope         = "https://graph.microsoft.com/.default"
	activeMemberFilter = "accountEnabled eq true and userType eq 'Member'"
	userSelect         = "id,displayName,mail,userPrincipalName,jobTitle"
	eventSelect        = "subject,organizer,attendees,start,end"
)

// Credentials identify the application registration used to call Graph
type Credentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// Client calls the Microsoft Graph REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	timezone   string
	logger     *zap.Logger
}

// NewClient creates a Graph client authenticated with the client credentials flow.
//
// "timezone" is sent in the Prefer header so event times come back as wall-clock times in that zone.
func NewClient(ctx context.Context, creds Credentials, baseURL, timezone string, logger *zap.Logger) *Client {
	cc := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
		Scopes:       []string{graphScope},
	}
	return NewClientWithHTTP(cc.Client(ctx), baseURL, timezone, logger)
}

// NewClientWithHTTP creates a Graph client over an already-authenticated HTTP client
func NewClientWithHTTP(httpClient *http.Client, baseURL, timezone string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timezone:   timezone,
		logger:     logger,
	}
}

// CreateEvent creates an event in the calendar of userEmail and returns the stored event
func (c *Client) CreateEvent(ctx context.Context, userEmail string, event *models.OutlookEvent) (*models.OutlookEvent, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	var created models.OutlookEvent
	path := "/users/" + url.PathEscape(userEmail) + "/calendar/events"
	if err := c.do(ctx, http.MethodPost, path, nil, body, nil, &created); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &created, nil
}

// GetEvent fetches an event from the calendar of userEmail.
//
// A deleted event yields an error wrapping errs.ErrProviderNotFound.
func (c *Client) GetEvent(ctx context.Context, userEmail, eventID string) (*models.OutlookEvent, error) {
	query := url.Values{}
	query.Set("$select", eventSelect)
	headers := map[string]string{
		"Prefer": fmt.Sprintf("outlook.timezone=%q", c.timezone),
	}

	var event models.OutlookEvent
	path := "/users/" + url.PathEscape(userEmail) + "/calendar/events/" + url.PathEscape(eventID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, headers, &event); err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}

	return &event, nil
}

// DeleteEvent removes an event from the calendar of userEmail
func (c *Client) DeleteEvent(ctx context.Context, userEmail, eventID string) error {
	path := "/users/" + url.PathEscape(userEmail) + "/calendar/events/" + url.PathEscape(eventID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}

// SearchUsers lists enabled member accounts, optionally filtered by a free-text query
// matched against display name, mail and user principal name.
func (c *Client) SearchUsers(ctx context.Context, search string) ([]models.DirectoryUser, error) {
	query := url.Values{}
	query.Set("$select", userSelect)
	query.Set("$filter", activeMemberFilter)
	if strings.TrimSpace(search) != "" {
		// Graph requires each search clause in quotes
		term := searchEscaper.Replace(search)
		query.Set("$search", fmt.Sprintf(`"displayName:%s" OR "mail:%s" OR "userPrincipalName:%s"`, term, term, term))
	}

	var result struct {
		Value []models.DirectoryUser `json:"value"`
	}
	if err := c.do(ctx, http.MethodGet, "/users", query, nil, consistencyHeaders(), &result); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return result.Value, nil
}

// CountUsers returns the number of enabled member accounts
func (c *Client) CountUsers(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("$filter", activeMemberFilter)

	var raw rawBody
	if err := c.do(ctx, http.MethodGet, "/users/$count", query, nil, consistencyHeaders(), &raw); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("invalid user count %q: %w", string(raw), err)
	}
	return count, nil
}

// searchEscaper escapes characters that would end a quoted $search clause
var searchEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// rawBody receives a non-JSON response body
type rawBody []byte

func consistencyHeaders() map[string]string {
	return map[string]string{"ConsistencyLevel": "eventual"}
}

// do sends a request and decodes a successful response into out (if non-nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, headers map[string]string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
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
		c.logger.Warn("graph request returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("graph returned status %d: %s", resp.StatusCode, graphErrorMessage(respBody))
	}

	switch dst := out.(type) {
	case nil:
		return nil
	case *rawBody:
		*dst = respBody
		return nil
	default:
		if len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
}

// graphErrorMessage extracts error.message from a Graph error payload
func graphErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Message == "" {
		return strings.TrimSpace(string(body))
	}
	return payload.Error.Code + ": " + payload.Error.Message
}
