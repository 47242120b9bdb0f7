package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"app/analytics"
	"app/chat"
	"app/models"
	"app/salesdata"
	"app/utils"
)

// RecordHandler serves the record inspection and forecast endpoints.
type RecordHandler struct {
	Store salesdata.Store
}

// NewRecordHandler wires a RecordHandler.
func NewRecordHandler(store salesdata.Store) *RecordHandler {
	return &RecordHandler{Store: store}
}

// HandleListRecords returns confirmed records, optionally filtered to one
// calendar month, paginated.
// GET /api/v1/records?month=june&page=1&pageSize=10
func (h *RecordHandler) HandleListRecords(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)

	records, err := h.Store.FetchAll(c.Context())
	if err != nil {
		log.Printf("Error fetching records: %v", err)
		records = nil
	}

	confirmed := analytics.FilterByStatus(records, analytics.IsConfirmed)

	if monthName := strings.ToLower(c.Query("month")); monthName != "" {
		month, ok := parseMonthName(monthName)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Unknown month: " + monthName})
		}
		confirmed = analytics.FilterConfirmedByMonth(records, month)
	}

	items := utils.Page(confirmed, page, pageSize)
	if items == nil {
		items = []models.SalesRecord{}
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"items":      items,
		"pagination": utils.CreatePagination(len(confirmed), page, pageSize),
	}})
}

func parseMonthName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return m, true
		}
	}
	return 0, false
}

// ForecastInput is the body for the direct forecast endpoint: either a
// free-text question or an explicit target date.
type ForecastInput struct {
	Question   string `json:"question"`
	TargetDate string `json:"target_date"`
}

// HandleForecast runs the forecast engine directly and returns the
// structured result together with the rendered reply.
// POST /api/v1/forecast
func (h *RecordHandler) HandleForecast(c *fiber.Ctx) error {
	var input ForecastInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	var target time.Time
	switch {
	case input.TargetDate != "":
		parsed, err := time.Parse("2006-01-02", input.TargetDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "target_date must be YYYY-MM-DD"})
		}
		target = parsed
	case input.Question != "":
		target = analytics.ExtractPredictionDate(input.Question)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Provide a question or a target_date"})
	}

	records, err := h.Store.FetchAll(c.Context())
	if err != nil {
		log.Printf("Error fetching records for forecast: %v", err)
		records = nil
	}

	result := analytics.PredictFutureSales(target, records)
	if result.Err != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"status": "error", "message": result.Err, "data": result})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"prediction": result,
		"rendered":   chat.RenderForecast(target, result),
	}})
}
