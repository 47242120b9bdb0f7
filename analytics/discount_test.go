package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

func TestBuildDiscountAnalysis(t *testing.T) {
	records := []models.SalesRecord{
		{Date: "2025-01-10", Status: "confirmed", Weave: "Satin", Quality: "Premium", Composition: "Cotton", AgentName: "Priya", Quantity: 10, Rate: 5},
		{Date: "2025-01-20", Status: "confirmed", Weave: "Satin", Quality: "Premium", Composition: "Cotton", AgentName: "Priya", Quantity: 20, Rate: 5},
		{Date: "2025-02-01", Status: "pending", Weave: "Twill", Quality: "Economy", Composition: "Linen", AgentName: "Karthik", Quantity: 99, Rate: 9},
	}

	analysis := BuildDiscountAnalysis(records, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 2, analysis.TotalConfirmedOrders)
	assert.Equal(t, "2025-03-01", analysis.AnalysisDate)

	category := analysis.Categories["Satin_Premium_Cotton"]
	assert.Equal(t, 2, category.Orders)
	assert.Equal(t, 150.0, category.TotalValue)
	assert.Equal(t, 30.0, category.TotalQuantity)

	agent := analysis.AgentPerformance["Priya"]
	assert.Equal(t, 2, agent.Orders)

	require.Len(t, analysis.PriceAnalysis["Premium"].Rates, 2)
	assert.Equal(t, 2, analysis.MonthlyTrends["2025-01"].Orders)

	// Pending order never leaks in.
	assert.NotContains(t, analysis.Categories, "Twill_Economy_Linen")
}
