package salesdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIStoreFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Quantity as a number, rate as a string: both shapes occur in the
		// live feed.
		_, _ = w.Write([]byte(`{
			"status": 200,
			"formData": [
				{"_id": "a1", "date": "2025-05-27T17:09:18.536Z", "weave": "Satin", "quality": "Premium", "composition": "Cotton", "quantity": 12, "rate": "150", "status": "confirmed", "agentName": "Priya", "customerName": "Alice"}
			]
		}`))
	}))
	defer srv.Close()

	store := NewAPIStore(srv.URL)
	records, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "a1", r.ID)
	assert.Equal(t, "Satin", r.Weave)
	assert.Equal(t, 12.0, float64(r.Quantity))
	assert.Equal(t, 150.0, float64(r.Rate))
}

func TestAPIStoreUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewAPIStore(srv.URL)
	_, err := store.FetchAll(context.Background())
	assert.Error(t, err)
}

func TestAPIStoreUnexpectedBodyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": 404, "formData": []}`))
	}))
	defer srv.Close()

	store := NewAPIStore(srv.URL)
	_, err := store.FetchAll(context.Background())
	assert.Error(t, err)
}

func TestAPIStoreUnreachable(t *testing.T) {
	store := NewAPIStore("http://127.0.0.1:1")
	_, err := store.FetchAll(context.Background())
	assert.Error(t, err)
}
