package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Success(t *testing.T) {
	var got Fields
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Message sent successfully!","submissionId":"MSG-1-a","timestamp":"2024-01-01T00:00:00Z","contactOptions":["x"]}`))
	}))
	defer srv.Close()

	resp, err := NewHTTPTransport(srv.URL, time.Second).Send(context.Background(), validFields)

	require.NoError(t, err)
	assert.Equal(t, validFields, got)
	assert.True(t, resp.Accepted())
	assert.Equal(t, "MSG-1-a", resp.Result.SubmissionID)
	assert.Equal(t, []string{"x"}, resp.Result.ContactOptions)
}

func TestHTTPTransport_FailureBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error","message":"Sorry","fallback":{"email":"me@example.com","phone":"+1"}}`))
	}))
	defer srv.Close()

	resp, err := NewHTTPTransport(srv.URL, time.Second).Send(context.Background(), validFields)

	require.NoError(t, err)
	assert.False(t, resp.Accepted())
	assert.Equal(t, "Sorry", resp.FailureMessage())
	require.NotNil(t, resp.Failure.Fallback)
	assert.Equal(t, "me@example.com", resp.Failure.Fallback.Email)
}

func TestHTTPTransport_UndecodableBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewHTTPTransport(srv.URL, time.Second).Send(context.Background(), validFields)
	assert.Error(t, err)
}

func TestHTTPTransport_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewController(NewHTTPTransport(url, time.Second), nil, DefaultConfig())
	fill(c, validFields)

	assert.Equal(t, StatusError, c.Submit(context.Background()))
	assert.Equal(t, NetworkErrorMessage, c.State().Message)
	assert.Equal(t, validFields, c.State().Fields)
}
