package feed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestFetchAlertsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"id":"a","timestamp":"1700000000","labels":[{"Name":"Person","Confidence":"0.9"}],"image_url":"http://x/a.jpg","status":"ok"},
			{"id":"b","timestamp":"2025-01-01T00:00:00Z","labels":[],"image_url":"http://x/b.jpg","status":"ok"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestLogger())
	items, err := client.FetchAlerts(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "Person", items[0].Labels[0].Name)
	assert.Equal(t, "http://x/a.jpg", items[0].ImageURL)
	assert.Empty(t, items[1].Labels)
}

func TestFetchAlertsMissingEndpoint(t *testing.T) {
	client := NewClient("", newTestLogger())

	items, err := client.FetchAlerts(context.Background())

	require.ErrorIs(t, err, ErrNoEndpoint)
	assert.Nil(t, items)
}

func TestFetchAlertsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestLogger())
	_, err := client.FetchAlerts(context.Background())

	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchAlertsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the dial fails

	client := NewClient(srv.URL, newTestLogger())
	_, err := client.FetchAlerts(context.Background())

	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchAlertsMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not JSON", body: `this is not json`},
		{name: "missing items field", body: `{"results":[]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, newTestLogger())
			_, err := client.FetchAlerts(context.Background())

			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestFetchAlertsEmptyItemsIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestLogger())
	items, err := client.FetchAlerts(context.Background())

	require.NoError(t, err)
	assert.Empty(t, items)
}
