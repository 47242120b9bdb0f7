package salesdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"app/models"
)

// Store fetches the raw order records the analytics pipeline runs on.
// Implementations return an empty slice on upstream failure; callers treat an
// empty result as "no data", never as a reason to abort a request.
type Store interface {
	FetchAll(ctx context.Context) ([]models.SalesRecord, error)
}

// APIStore pulls records from the form-data endpoint of the live sales API.
type APIStore struct {
	URL    string
	Client *http.Client
}

// NewAPIStore creates an APIStore for the given endpoint URL.
func NewAPIStore(url string) *APIStore {
	return &APIStore{
		URL: url,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type formDataResponse struct {
	Status   int                  `json:"status"`
	FormData []models.SalesRecord `json:"formData"`
}

// FetchAll retrieves every record from the API endpoint.
func (s *APIStore) FetchAll(ctx context.Context) ([]models.SalesRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sales data request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sales data endpoint returned status %d", resp.StatusCode)
	}

	var body formDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode sales data response: %w", err)
	}

	if body.Status != http.StatusOK {
		return nil, fmt.Errorf("sales data endpoint reported status %d", body.Status)
	}

	return body.FormData, nil
}
