package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

type fakeStore struct {
	records []models.SalesRecord
	err     error
}

func (f *fakeStore) FetchAll(ctx context.Context) ([]models.SalesRecord, error) {
	return f.records, f.err
}

type fakeResponder struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeResponder) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func confirmedRecord(date string, qty, rate float64) models.SalesRecord {
	return models.SalesRecord{
		Date: date, Status: "confirmed", Weave: "Satin", Quality: "Premium",
		Composition: "Cotton", AgentName: "Priya", CustomerName: "Alice",
		Quantity: models.Flexible(qty), Rate: models.Flexible(rate),
	}
}

func yearOfRecords() []models.SalesRecord {
	return []models.SalesRecord{
		confirmedRecord("2025-01-10", 100, 5),
		confirmedRecord("2025-02-10", 150, 5),
		confirmedRecord("2025-03-10", 120, 5),
	}
}

func TestAnswerPredictionQuestionRendersForecast(t *testing.T) {
	responder := &fakeResponder{reply: "model text"}
	svc := NewService(&fakeStore{records: yearOfRecords()}, responder)

	reply := svc.Answer(context.Background(), "Predict revenue for June 2026", nil, false)

	assert.Contains(t, reply, "Sales Prediction for June 2026")
	assert.Contains(t, reply, "Confidence Level:")
	// The forecast path is fully local.
	assert.Empty(t, responder.prompts)
}

func TestAnswerPredictionWithoutDataApologizes(t *testing.T) {
	svc := NewService(&fakeStore{err: errors.New("down")}, &fakeResponder{})

	reply := svc.Answer(context.Background(), "Predict revenue for June 2026", nil, false)
	assert.Contains(t, reply, "cannot access the sales data")
}

func TestAnswerGeneralQuestionGoesToResponder(t *testing.T) {
	responder := &fakeResponder{reply: "Satin leads with 3 confirmed orders."}
	svc := NewService(&fakeStore{records: yearOfRecords()}, responder)

	reply := svc.Answer(context.Background(), "What is the most sold weave type?", nil, false)

	assert.Equal(t, "Satin leads with 3 confirmed orders.", reply)
	require.Len(t, responder.prompts, 1)
	assert.Contains(t, responder.prompts[0], "CONFIRMED ORDERS DATA")
	assert.Contains(t, responder.prompts[0], "What is the most sold weave type?")
}

func TestAnswerResponderFailureReturnsErrorString(t *testing.T) {
	svc := NewService(&fakeStore{records: yearOfRecords()}, &fakeResponder{err: errors.New("quota exceeded")})

	reply := svc.Answer(context.Background(), "What is the most sold weave type?", nil, false)
	assert.Contains(t, reply, "Error generating response")
}

func TestAnswerOutOfDomainUsesRefusalPrompt(t *testing.T) {
	responder := &fakeResponder{reply: "polite refusal"}
	svc := NewService(&fakeStore{}, responder)

	reply := svc.Answer(context.Background(), "fix my bicycle please and thanks a lot", nil, false)

	assert.Equal(t, "polite refusal", reply)
	require.Len(t, responder.prompts, 1)
	assert.Contains(t, responder.prompts[0], "outside my domain")
}

func TestAnswerOutOfDomainResponderFailureFallsBack(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeResponder{err: errors.New("down")})

	reply := svc.Answer(context.Background(), "fix my bicycle please and thanks a lot", nil, false)
	assert.Equal(t, refusalFallback, reply)
}

func TestAnswerMonthSummaryIsDeterministic(t *testing.T) {
	records := []models.SalesRecord{
		confirmedRecord("2025-06-01", 10, 2),
		confirmedRecord("2025-06-15", 5, 2),
		{Date: "2025-06-20", Status: "pending", Weave: "Twill", Quantity: 7, Rate: 2},
	}
	responder := &fakeResponder{reply: "should not be used"}
	svc := NewService(&fakeStore{records: records}, responder)

	reply := svc.Answer(context.Background(), "what sales happened in june", nil, false)

	assert.Contains(t, reply, "2 confirmed sales found for June")
	assert.Contains(t, reply, "Satin: 2")
	assert.Empty(t, responder.prompts)
}

func TestAnswerMonthSummaryNoOrders(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeResponder{})

	reply := svc.Answer(context.Background(), "what sales happened in december", nil, false)
	assert.Contains(t, reply, "No confirmed sales found for December")
}

func TestAnswerDiscountQuestion(t *testing.T) {
	responder := &fakeResponder{reply: "cut satin prices by 10%"}
	svc := NewService(&fakeStore{records: yearOfRecords()}, responder)

	reply := svc.Answer(context.Background(), "suggest a discount strategy for slow movers", nil, false)

	assert.True(t, strings.HasPrefix(reply, "**LIVE CONFIRMED SALES DISCOUNT ANALYSIS**"))
	require.Len(t, responder.prompts, 1)
	assert.Contains(t, responder.prompts[0], "CATEGORY PERFORMANCE")
}

func TestAnswerClarifyPath(t *testing.T) {
	responder := &fakeResponder{reply: "could you rephrase?"}
	svc := NewService(&fakeStore{records: yearOfRecords()}, responder)

	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "what is the best quality"},
		{Role: models.RoleAssistant, Content: "Premium."},
	}
	reply := svc.Answer(context.Background(), "yes", history, false)

	assert.Equal(t, "could you rephrase?", reply)
	require.Len(t, responder.prompts, 1)
	assert.Contains(t, responder.prompts[0], "what is the best quality")
}
