package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is the wire shape shared by every API response
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// DecodeSuccess verifies a success envelope and decodes its data into v
func DecodeSuccess(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope Envelope
	require.NoError(t, json.Unmarshal(body, &envelope), "failed to unmarshal envelope: %s", string(body))
	require.Equal(t, "success", envelope.Status, "expected success envelope: %s", string(body))

	if v != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, v), "failed to unmarshal data: %s", string(body))
	}
}

// AssertErrorResponse verifies an error envelope with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope Envelope
	require.NoError(t, json.Unmarshal(body, &envelope), "failed to unmarshal envelope: %s", string(body))
	assert.Equal(t, "error", envelope.Status, "expected error envelope")
	if expectedMessage != "" {
		assert.Contains(t, envelope.Message, expectedMessage, "error message mismatch")
	}
}
