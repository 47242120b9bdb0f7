package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"app/analytics"
	"app/models"
	"app/salesdata"
)

const (
	refusalFallback = "I'm a sales analytics assistant, so that question is outside my scope. Try asking about sales trends, product performance, or a forecast instead."
	clarifyFallback = "Thanks for confirming. Could you rephrase your question? For example: 'What is the most sold weave type?' or 'Predict sales for June 2026'."
)

var discountKeywords = []string{"discount", "offer", "sale", "promotion", "price", "strategy", "recommendation", "suggest"}

var monthsOfYear = []time.Month{
	time.January, time.February, time.March, time.April, time.May, time.June,
	time.July, time.August, time.September, time.October, time.November, time.December,
}

// Service runs a question through the full pipeline: month shortcuts,
// context resolution, forecasting, discount analysis, or the responder.
type Service struct {
	store     salesdata.Store
	responder Responder
	resolver  *Resolver
	now       func() time.Time
}

// NewService wires a Service over the given record store and responder.
func NewService(store salesdata.Store, responder Responder) *Service {
	return &Service{
		store:     store,
		responder: responder,
		resolver:  NewResolver(analytics.NewClassifier(store)),
		now:       time.Now,
	}
}

// Answer produces the assistant's reply for one user question. The history
// holds the prior turns only, never the question itself, and is not modified.
func (s *Service) Answer(ctx context.Context, question string, history []models.ChatMessage, followupHint bool) string {
	if reply, ok := s.monthSummary(ctx, question); ok {
		return reply
	}

	resolved := s.resolver.Resolve(ctx, question, history, followupHint)
	switch resolved.Action {
	case ActionRefuse:
		return s.respond(ctx, buildRefusalPrompt(resolved.Question), refusalFallback)
	case ActionClarify:
		return s.respond(ctx, buildClarifyPrompt(LastUserQuestion(history)), clarifyFallback)
	}

	if isDiscountQuestion(resolved.Question) {
		return s.discountAnalysis(ctx)
	}

	if analytics.IsPredictionQuestion(resolved.Question) {
		return s.forecast(ctx, resolved.Question)
	}

	return s.analysisAnswer(ctx, resolved)
}

// respond calls the responder and degrades to the fallback text on failure.
func (s *Service) respond(ctx context.Context, prompt, fallback string) string {
	text, err := s.responder.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Responder call failed: %v", err)
		return fallback
	}
	return text
}

// monthSummary answers "what sales happened in June" style questions with a
// deterministic confirmed-orders breakdown instead of asking the model.
func (s *Service) monthSummary(ctx context.Context, question string) (string, bool) {
	ql := strings.ToLower(question)
	if !strings.Contains(ql, "sales") && !strings.Contains(ql, "happened") {
		return "", false
	}

	var found time.Month
	for _, m := range monthsOfYear {
		if strings.Contains(ql, strings.ToLower(m.String())) {
			found = m
			break
		}
	}
	if found == 0 {
		return "", false
	}

	records, err := s.store.FetchAll(ctx)
	if err != nil {
		log.Printf("Record fetch failed for month summary: %v", err)
		records = nil
	}

	monthOrders := analytics.FilterConfirmedByMonth(records, found)
	if len(monthOrders) == 0 {
		return fmt.Sprintf("**Summary:** No confirmed sales found for %s.\n\n**Detailed Breakdown:** After analyzing all sales records, there are 0 confirmed orders in %s.", found, found), true
	}

	weaveCounts := make(map[string]int)
	weaveOrder := []string{}
	var breakdown strings.Builder
	for i, r := range monthOrders {
		weave := strings.TrimSpace(r.Weave)
		if weave != "" {
			if _, seen := weaveCounts[weave]; !seen {
				weaveOrder = append(weaveOrder, weave)
			}
			weaveCounts[weave]++
		}
		breakdown.WriteString(fmt.Sprintf("%d. **Date:** %s, **Weave:** %s, **Quality:** %s, **Quantity:** %g, **Agent:** %s, **Customer:** %s\n",
			i+1, r.Date, r.Weave, r.Quality, float64(r.Quantity), r.AgentName, r.CustomerName))
	}

	weaveParts := make([]string, 0, len(weaveOrder))
	for _, weave := range weaveOrder {
		weaveParts = append(weaveParts, fmt.Sprintf("%s: %d", weave, weaveCounts[weave]))
	}

	return fmt.Sprintf(`**Summary:** %d confirmed sales found for %s.

**Detailed Breakdown:**
%s
**Weave Type Summary:** %s

**Insights:** The confirmed sales data for %s shows activity across %d different weave types.`,
		len(monthOrders), found, breakdown.String(), strings.Join(weaveParts, ", "), found, len(weaveCounts)), true
}

func isDiscountQuestion(question string) bool {
	ql := strings.ToLower(question)
	for _, keyword := range discountKeywords {
		if strings.Contains(ql, keyword) {
			return true
		}
	}
	return false
}

// discountAnalysis aggregates confirmed-order performance and asks the
// responder for discount recommendations.
func (s *Service) discountAnalysis(ctx context.Context) string {
	records, err := s.store.FetchAll(ctx)
	if err != nil || len(records) == 0 {
		return "Unable to fetch live sales data for discount analysis."
	}

	analysis := analytics.BuildDiscountAnalysis(records, s.now())
	if analysis.TotalConfirmedOrders == 0 {
		return "No confirmed orders found for discount analysis."
	}

	prompt := buildDiscountPrompt(
		analysis.TotalConfirmedOrders,
		mustJSON(analysis.Categories),
		mustJSON(analysis.AgentPerformance),
		mustJSON(analysis.PriceAnalysis),
		mustJSON(analysis.MonthlyTrends),
	)

	text, err := s.responder.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Responder call failed for discount analysis: %v", err)
		return "Unable to generate discount recommendations at this time."
	}
	return "**LIVE CONFIRMED SALES DISCOUNT ANALYSIS**\n\n" + text
}

func mustJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// forecast runs the prediction pipeline and renders the result.
func (s *Service) forecast(ctx context.Context, question string) string {
	records, err := s.store.FetchAll(ctx)
	if err != nil || len(records) == 0 {
		return "I apologize, but I cannot access the sales data needed for predictions at the moment. Please try again later."
	}

	target := analytics.ExtractPredictionDate(question)
	result := analytics.PredictFutureSales(target, records)
	if result.Err != "" {
		return fmt.Sprintf("**Prediction Error:** %s", result.Err)
	}

	return RenderForecast(target, result)
}

// RenderForecast formats a prediction result as the assistant's reply.
func RenderForecast(target time.Time, result analytics.PredictionResult) string {
	monthName := target.Month().String()
	year := target.Year()

	return fmt.Sprintf(`**Sales Prediction for %s %d**

**Summary:** Based on historical trends analysis, I predict the following sales metrics for %s %d:

**Detailed Forecast:**
- **Predicted Quantity:** %.2f units
- **Predicted Revenue:** ₹%.2f
- **Predicted Orders:** %d orders
- **Average Growth Rate:** %.2f%% per month
- **Seasonal Factor:** %.2fx (based on historical %s data)

**Prediction Details:**
- **Confidence Level:** %s
- **Months Ahead:** %d months from latest data
- **Historical Data:** Based on %d months of sales data

**Key Insights:**
- This prediction uses historical sales patterns, seasonal trends, and growth rates
- %s confidence due to %d months projection horizon
- Seasonal adjustment applied based on historical %s performance
- Growth projection assumes continuation of current market trends

**Disclaimer:** This prediction is based on historical data patterns and assumes continuation of current trends. Actual results may vary due to market conditions, economic factors, seasonal variations, and external events.`,
		monthName, year, monthName, year,
		result.PredictedQuantity, result.PredictedRevenue, result.PredictedOrders,
		result.AvgGrowthRate, result.SeasonalFactor, monthName,
		result.Confidence, result.MonthsAhead, result.HistoricalMonths,
		result.Confidence, result.MonthsAhead, monthName)
}

// analysisAnswer sends a general in-domain question to the responder with the
// record dump as context.
func (s *Service) analysisAnswer(ctx context.Context, resolved ResolvedRequest) string {
	records, err := s.store.FetchAll(ctx)
	if err != nil {
		log.Printf("Record fetch failed for analysis answer: %v", err)
		records = nil
	}
	confirmed := analytics.FilterByStatus(records, analytics.IsConfirmed)

	prompt := buildAnalysisPrompt(RecordsCSV(confirmed), RecordsCSV(records), resolved.History, resolved.Question)

	text, err := s.responder.Generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Error generating response: %v", err)
	}
	return text
}
