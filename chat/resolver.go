package chat

import (
	"context"
	"regexp"
	"strings"

	"app/analytics"
	"app/models"
)

// Action is the resolver's verdict on how a question should be handled.
type Action string

const (
	// ActionAnswer means the resolved question should be answered.
	ActionAnswer Action = "answer"
	// ActionRefuse means the question is out of domain.
	ActionRefuse Action = "refuse"
	// ActionClarify means the user should be asked to rephrase.
	ActionClarify Action = "clarify"
)

// ResolvedRequest is the outcome of context resolution: the effective
// question (possibly merged with the previous one), the history view to carry
// forward, and the action to take.
type ResolvedRequest struct {
	Question string
	History  []models.ChatMessage
	Action   Action
}

// RelevanceChecker decides whether a question belongs to the sales domain.
type RelevanceChecker interface {
	IsSalesRelated(ctx context.Context, question string) bool
}

// Resolver interprets follow-up questions against the conversation so far.
// It only ever reads the caller's history and returns sub-slices of it.
type Resolver struct {
	relevance RelevanceChecker
}

// NewResolver creates a Resolver using the given relevance checker.
func NewResolver(relevance RelevanceChecker) *Resolver {
	return &Resolver{relevance: relevance}
}

var followupPhrases = []string{
	"only in", "what about", "how about", "and for", "show me", "can you", "do it",
	"yes", "change it", "ok", "go ahead", "then", "next", "now", "also",
	"give me", "tell me", "show", "list", "details", "breakdown", "again", "repeat",
}

var temporalPhrases = []string{"only in", "in ", "for ", "during", "within"}

var affirmations = map[string]bool{
	"yes": true, "yeah": true, "yep": true, "sure": true,
	"please do": true, "go ahead": true, "correct": true,
}

var temporalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`only in (\w+)`),
	regexp.MustCompile(`in (\w+) month`),
	regexp.MustCompile(`for (\w+)`),
	regexp.MustCompile(`during (\w+)`),
}

// topicGroups define the analysis areas a question can belong to. Two
// questions continue the same conversation only when their topic sets
// intersect.
var topicGroups = map[string][]string{
	"weave":       {"weave", "weev", "plain", "satin", "linen", "denim", "crepe", "twill", "spandex"},
	"composition": {"composition", "komposition", "kumposison", "composision", "cotton", "polyester"},
	"quality":     {"quality", "kolity", "qualety", "premium", "standard", "economy"},
	"agent":       {"agent", "agnet", "priya", "sowmiya", "mukilan", "karthik", "boobalan", "boopalan"},
	"customer":    {"customer", "cusomer", "alice", "smith", "ravi", "qilyze", "jhon"},
	"sales":       {"sales", "revenue", "quantity", "rate", "growth", "trend", "sold", "most"},
	"status":      {"status", "confirmed", "pending", "cancelled"},
}

// isFollowupQuestion reports whether the question only makes sense in light
// of the previous one.
func isFollowupQuestion(q string) bool {
	ql := strings.TrimSpace(strings.ToLower(q))
	for _, phrase := range temporalPhrases {
		if strings.Contains(ql, phrase) {
			return true
		}
	}
	for _, phrase := range followupPhrases {
		if strings.HasPrefix(ql, phrase) || strings.Contains(ql, phrase) {
			return true
		}
	}
	return len(strings.Fields(ql)) <= 5
}

// isTemporalFilter reports whether the question narrows the analysis to a
// calendar period ("only in June month").
func isTemporalFilter(q string) bool {
	ql := strings.ToLower(q)
	for _, p := range temporalPatterns {
		if p.MatchString(ql) {
			return true
		}
	}
	return false
}

// questionTopics returns the topic groups the question touches.
func questionTopics(q string) map[string]bool {
	ql := strings.ToLower(q)
	topics := make(map[string]bool)
	for topic, keywords := range topicGroups {
		for _, keyword := range keywords {
			if strings.Contains(ql, keyword) {
				topics[topic] = true
				break
			}
		}
	}
	return topics
}

// areQuestionsRelated reports whether two questions continue the same
// analysis. A pure temporal filter carrying no topic of its own inherits the
// previous question's topic; a filter that names a different topic does not,
// which stops filters from bleeding across subjects.
func areQuestionsRelated(current, last string) bool {
	if current == "" || last == "" {
		return false
	}
	currentTopics := questionTopics(current)
	lastTopics := questionTopics(last)
	for topic := range currentTopics {
		if lastTopics[topic] {
			return true
		}
	}
	return len(currentTopics) == 0 && isTemporalFilter(current)
}

// LastUserQuestion returns the most recent user turn in the history, or ""
// when there is none.
func LastUserQuestion(history []models.ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleUser {
			return history[i].Content
		}
	}
	return ""
}

// lastTwo is the trimmed history view used after a merge, so stale context
// does not leak into the next answer.
func lastTwo(history []models.ChatMessage) []models.ChatMessage {
	if len(history) >= 2 {
		return history[len(history)-2:]
	}
	return history
}

// Resolve decides how to interpret the question given the conversation so
// far. The history must not include the question itself.
func (r *Resolver) Resolve(ctx context.Context, question string, history []models.ChatMessage, followupHint bool) ResolvedRequest {
	effective := question
	view := history

	normalized := strings.TrimSpace(strings.ToLower(question))
	if affirmations[normalized] {
		last := LastUserQuestion(history)
		if last == "" {
			return ResolvedRequest{Question: question, History: history, Action: ActionClarify}
		}
		corrected := analytics.CorrectMisspellings(last)
		if corrected == strings.ToLower(last) {
			// Nothing to correct, so "yes" answers nothing concrete.
			return ResolvedRequest{Question: question, History: history, Action: ActionClarify}
		}
		effective = corrected
		view = lastTwo(history)
	} else if followupHint || (len(history) > 0 && isFollowupQuestion(question)) {
		last := LastUserQuestion(history)
		if last != "" && areQuestionsRelated(question, last) {
			effective = strings.TrimSpace(last) + " " + strings.TrimSpace(question)
			view = lastTwo(history)
		}
		// Unrelated questions stand on their own with full history.
	}

	if !r.relevance.IsSalesRelated(ctx, effective) && !analytics.IsPredictionQuestion(effective) {
		return ResolvedRequest{Question: effective, History: view, Action: ActionRefuse}
	}

	return ResolvedRequest{Question: effective, History: view, Action: ActionAnswer}
}
