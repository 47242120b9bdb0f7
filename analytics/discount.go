package analytics

import (
	"fmt"
	"time"

	"app/models"
)

// CategoryPerformance tallies confirmed orders for one
// weave/quality/composition combination.
type CategoryPerformance struct {
	Orders        int     `json:"orders"`
	TotalValue    float64 `json:"total_value"`
	TotalQuantity float64 `json:"total_quantity"`
}

// AgentPerformance tallies confirmed orders per agent.
type AgentPerformance struct {
	Orders int     `json:"orders"`
	Value  float64 `json:"value"`
}

// PricePerformance collects the rates seen for one quality tier.
type PricePerformance struct {
	Rates  []float64 `json:"rates"`
	Orders int       `json:"orders"`
}

// MonthlyTrend tallies confirmed orders per calendar month.
type MonthlyTrend struct {
	Orders   int     `json:"orders"`
	Value    float64 `json:"value"`
	Quantity float64 `json:"quantity"`
}

// DiscountAnalysis is the aggregated view of confirmed orders used to ask the
// responder for discount recommendations.
type DiscountAnalysis struct {
	TotalConfirmedOrders int                            `json:"total_confirmed_orders"`
	Categories           map[string]CategoryPerformance `json:"categories"`
	AgentPerformance     map[string]AgentPerformance    `json:"agent_performance"`
	PriceAnalysis        map[string]PricePerformance    `json:"price_analysis"`
	MonthlyTrends        map[string]MonthlyTrend        `json:"monthly_trends"`
	AnalysisDate         string                         `json:"analysis_date"`
}

// BuildDiscountAnalysis aggregates category, agent, price and monthly
// performance over the confirmed records.
func BuildDiscountAnalysis(records []models.SalesRecord, now time.Time) DiscountAnalysis {
	confirmed := FilterByStatus(records, IsConfirmed)

	analysis := DiscountAnalysis{
		TotalConfirmedOrders: len(confirmed),
		Categories:           make(map[string]CategoryPerformance),
		AgentPerformance:     make(map[string]AgentPerformance),
		PriceAnalysis:        make(map[string]PricePerformance),
		MonthlyTrends:        make(map[string]MonthlyTrend),
		AnalysisDate:         now.Format("2006-01-02"),
	}

	for _, r := range confirmed {
		quantity := float64(r.Quantity)
		rate := float64(r.Rate)
		totalValue := quantity * rate

		if date, err := ParseOrderDate(r.Date); err == nil {
			key := MonthKey(date)
			trend := analysis.MonthlyTrends[key]
			trend.Orders++
			trend.Value += totalValue
			trend.Quantity += quantity
			analysis.MonthlyTrends[key] = trend
		}

		categoryKey := fmt.Sprintf("%s_%s_%s", orDefault(r.Weave), orDefault(r.Quality), orDefault(r.Composition))
		category := analysis.Categories[categoryKey]
		category.Orders++
		category.TotalValue += totalValue
		category.TotalQuantity += quantity
		analysis.Categories[categoryKey] = category

		agent := analysis.AgentPerformance[orDefault(r.AgentName)]
		agent.Orders++
		agent.Value += totalValue
		analysis.AgentPerformance[orDefault(r.AgentName)] = agent

		if rate > 0 {
			price := analysis.PriceAnalysis[orDefault(r.Quality)]
			price.Rates = append(price.Rates, rate)
			price.Orders++
			analysis.PriceAnalysis[orDefault(r.Quality)] = price
		}
	}

	return analysis
}

func orDefault(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
