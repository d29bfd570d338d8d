package flipt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// evaluationRequest is the JSON body Flipt receives for a boolean evaluation
type evaluationRequest struct {
	NamespaceKey string `json:"namespaceKey"`
	FlagKey      string `json:"flagKey"`
	EntityID     string `json:"entityId"`
}

func TestNewClient(t *testing.T) {
	client := NewClient(nil, "http://flipt.example.com/", "token", "probation-supervision", zap.NewNop())

	assert.NotNil(t, client)
	assert.NotNil(t, client.evaluation)
	assert.Equal(t, "probation-supervision", client.namespace)
}

func TestClient_EvaluateBoolean(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		status        int
		body          string
		expected      bool
		expectedError bool
	}{
		{name: "enabled", token: "secret", status: http.StatusOK, body: `{"enabled":true,"flagKey":"sms-notification-toggle","reason":"MATCH_EVALUATION_REASON"}`, expected: true},
		{name: "disabled without token", status: http.StatusOK, body: `{"enabled":false}`},
		{name: "flag missing", status: http.StatusNotFound, body: `{"code":5,"message":"flag not found"}`, expectedError: true},
		{name: "malformed body", status: http.StatusOK, body: `not json`, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received evaluationRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/evaluate/v1/boolean", r.URL.Path)
				if tt.token != "" {
					assert.Equal(t, "Bearer "+tt.token, r.Header.Get("Authorization"))
				} else {
					assert.Empty(t, r.Header.Get("Authorization"))
				}

				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(body, &received))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.Client(), server.URL, tt.token, "probation-supervision", zap.NewNop())
			enabled, err := client.EvaluateBoolean(context.Background(), "sms-notification-toggle")

			assert.Equal(t, "probation-supervision", received.NamespaceKey)
			assert.Equal(t, "sms-notification-toggle", received.FlagKey)
			if tt.expectedError {
				assert.Error(t, err)
				assert.False(t, enabled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, enabled)
		})
	}
}

func TestClient_EvaluateBoolean_UsesFlagKeyAsEntity(t *testing.T) {
	var received evaluationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"enabled":true}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "", "probation-supervision", zap.NewNop())
	_, err := client.EvaluateBoolean(context.Background(), "sms-notification-toggle")

	require.NoError(t, err)
	assert.Equal(t, "sms-notification-toggle", received.EntityID)
}
