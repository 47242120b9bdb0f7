package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordTestApp() *fiber.App {
	h := NewRecordHandler(&stubRecordStore{records: confirmedJuneRecords()})
	app := fiber.New()
	app.Get("/records", h.HandleListRecords)
	app.Post("/forecast", h.HandleForecast)
	return app
}

func TestListRecords(t *testing.T) {
	app := newRecordTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/records", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["items"], 2)
}

func TestListRecordsMonthFilter(t *testing.T) {
	app := newRecordTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/records?month=june", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Twill", first["weave"])
}

func TestListRecordsUnknownMonth(t *testing.T) {
	app := newRecordTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/records?month=smarch", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestForecastByTargetDate(t *testing.T) {
	app := newRecordTestApp()

	payload := bytes.NewBufferString(`{"target_date": "2025-12-15"}`)
	req := httptest.NewRequest("POST", "/forecast", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	prediction := data["prediction"].(map[string]interface{})
	assert.Equal(t, float64(6), prediction["months_ahead"])
	assert.Equal(t, "High", prediction["confidence"])
}

func TestForecastByQuestion(t *testing.T) {
	app := newRecordTestApp()

	payload := bytes.NewBufferString(`{"question": "predict sales for june 2026"}`)
	req := httptest.NewRequest("POST", "/forecast", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	prediction := data["prediction"].(map[string]interface{})
	assert.Equal(t, "2026-06-15", prediction["target_date"])
}

func TestForecastMissingInput(t *testing.T) {
	app := newRecordTestApp()

	payload := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest("POST", "/forecast", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestForecastInsufficientHistory(t *testing.T) {
	h := NewRecordHandler(&stubRecordStore{})
	app := fiber.New()
	app.Post("/forecast", h.HandleForecast)

	payload := bytes.NewBufferString(`{"target_date": "2026-06-15"}`)
	req := httptest.NewRequest("POST", "/forecast", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}
