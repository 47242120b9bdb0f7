package chat

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"app/models"
)

// systemContext instructs the model how to analyze the record dump. The
// status-filtering and counting rules are the load-bearing part: the model
// must never mix confirmed orders with other statuses in performance answers.
const systemContext = `You are the Dress Sales Monitoring Chatbot, an AI-powered analytics system for dress and fabric sales companies. Help business administrators gain insights from their sales data in a professional, friendly way.

**CRITICAL STATUS FILTERING RULES:**
- **CONFIRMED ORDERS ONLY:** When analyzing "most sold", "total sales", "revenue", "trends", or any sales performance metrics, ONLY use records with status = "confirmed"
- **NEVER GROUP STATUSES:** Do NOT combine "confirmed" and "processed" orders - they are separate categories
- **Sales Analysis:** "Most sold" = most sold among CONFIRMED orders ONLY (exclude processed, pending, cancelled)

**CRITICAL COUNTING RULES:**
- Count the ACTUAL records you are analyzing before writing your response
- The number in your summary MUST EXACTLY MATCH the number of items in your detailed breakdown
- When analyzing "most sold" items, ALWAYS check for ties among confirmed orders; if all items have equal counts, say so instead of naming a single winner

**RESPONSE STRUCTURE:**
1. **Summary:** Clear, concise summary with a verified accurate count
2. **Detailed Breakdown:** Show the exact same count as the summary
3. **Insights:** Professional analysis based on accurate data`

var csvHeader = []string{"_id", "date", "weave", "quality", "composition", "quantity", "rate", "status", "agentName", "customerName"}

// RecordsCSV renders records as a CSV block for model context. Empty input
// yields an empty string.
func RecordsCSV(records []models.SalesRecord) string {
	if len(records) == 0 {
		return ""
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(csvHeader)
	for _, r := range records {
		_ = w.Write([]string{
			r.ID, r.Date, r.Weave, r.Quality, r.Composition,
			strconv.FormatFloat(float64(r.Quantity), 'f', -1, 64),
			strconv.FormatFloat(float64(r.Rate), 'f', -1, 64),
			r.Status, r.AgentName, r.CustomerName,
		})
	}
	w.Flush()
	return sb.String()
}

// buildAnalysisPrompt assembles the full prompt: record context, system
// instructions, conversation so far, and the current question.
func buildAnalysisPrompt(confirmedCSV, fullCSV string, history []models.ChatMessage, question string) string {
	var sb strings.Builder

	sb.WriteString("CONFIRMED ORDERS DATA (for sales analysis):\n")
	sb.WriteString(confirmedCSV)
	sb.WriteString("\n\nFULL DATA (all statuses - for reference):\n")
	sb.WriteString(fullCSV)
	sb.WriteString("\n\n")
	sb.WriteString(systemContext)
	sb.WriteString("\n\nUse the CONFIRMED orders data for sales analysis (most sold, revenue, trends). Use FULL data only when the user specifically asks about other statuses like 'pending' or 'cancelled'.\n")

	if len(history) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, msg := range history {
			sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		}
	}

	sb.WriteString("\nuser: ")
	sb.WriteString(question)
	return sb.String()
}

// buildRefusalPrompt asks the model for a polite out-of-domain response.
func buildRefusalPrompt(question string) string {
	return fmt.Sprintf(`You are a Dress Sales Monitoring Chatbot. A user asked: %q

This question appears to be outside my domain of expertise. I am specifically designed to analyze fabric sales data, provide sales insights, and make predictions about sales performance.

Please provide a helpful, polite response that:
1. Acknowledges their question
2. Explains that this is outside your scope as a sales analytics chatbot
3. Suggests they ask about sales data, trends, predictions, or fabric performance instead
4. Provides 2-3 example questions they could ask

Keep the response friendly and helpful, not dismissive.`, question)
}

// buildClarifyPrompt asks the model to request a clearer restatement of the
// previous question.
func buildClarifyPrompt(lastQuestion string) string {
	return fmt.Sprintf(`You are a Dress Sales Monitoring Chatbot. The user's previous question was: %q and they responded "yes".

Please provide a helpful response that:
1. Acknowledges their confirmation
2. Asks them to rephrase their original question more clearly
3. Provides 2-3 example questions they could ask about sales data
4. Mentions you can help with sales analysis, trends, and predictions

Keep the response friendly and encouraging.`, lastQuestion)
}

// buildDiscountPrompt asks the model for discount recommendations over the
// aggregated confirmed-order analysis.
func buildDiscountPrompt(totalOrders int, categoriesJSON, agentsJSON, pricesJSON, trendsJSON string) string {
	return fmt.Sprintf(`As a sales analytics expert, analyze the following live dress sales data (CONFIRMED ORDERS ONLY) and provide strategic discount recommendations:

CONFIRMED SALES OVERVIEW:
- Total Confirmed Orders: %d

CATEGORY PERFORMANCE (CONFIRMED ORDERS):
%s

AGENT PERFORMANCE (CONFIRMED ORDERS):
%s

PRICE ANALYSIS (CONFIRMED ORDERS):
%s

MONTHLY TRENDS (CONFIRMED ORDERS):
%s

Please provide:
1. **DISCOUNT RECOMMENDATIONS** (with specific percentages and reasoning)
2. **CATEGORY-WISE STRATEGY** (which products need discounts)
3. **TIMING RECOMMENDATIONS** (when to apply discounts)
4. **PERFORMANCE INSIGHTS** (what's working/not working)
5. **ACTION ITEMS** (immediate steps to take)

Format your response clearly with specific discount percentages and short, actionable reasons.`,
		totalOrders, categoriesJSON, agentsJSON, pricesJSON, trendsJSON)
}
