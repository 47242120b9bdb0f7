package analytics

import (
	"context"
	"log"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"app/models"
	"app/salesdata"
)

// salesKeywords is the static domain vocabulary: product attributes, statuses,
// metric names, known agent and customer names, and common misspellings.
var salesKeywords = []string{
	"record", "dress", "sales", "trend", "predict", "forecast", "quantity", "rate", "revenue",
	"agent", "customer", "weave", "linen", "satin", "denim", "crepe", "twill",
	"premium", "standard", "economy", "cotton", "polyester", "spandex",
	"order", "status", "confirmed", "pending", "cancelled", "growth",
	"performance", "top", "best", "most", "sold", "item", "product",
	"month", "year", "quarter", "period", "analysis", "data", "id", "date",
	"discount", "offer", "sale", "promotion", "price", "strategy", "recommendation",
	"quality", "kolity", "qualety", "qaulity", "qulaity",
	"composition", "komposition", "kumposison", "composision",
	"priya", "sowmiya", "mukilan", "karthik",
	"alice", "smith", "ravi", "qilyze", "jhon",
}

const (
	staticMatchCutoff  = 0.6
	dynamicMatchCutoff = 0.75
)

// Classifier decides whether a question is about the sales domain. The static
// vocabulary is checked first; only questions that miss it trigger a live
// fetch to harvest vocabulary from the current record set.
type Classifier struct {
	store salesdata.Store
}

// NewClassifier creates a Classifier over the given record store.
func NewClassifier(store salesdata.Store) *Classifier {
	return &Classifier{store: store}
}

// similarity is the difflib sequence-match ratio between two words.
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// hasCloseMatch reports whether any vocabulary entry matches the word at or
// above the cutoff ratio.
func hasCloseMatch(word string, vocabulary []string, cutoff float64) bool {
	for _, v := range vocabulary {
		if similarity(word, v) >= cutoff {
			return true
		}
	}
	return false
}

// IsSalesRelated reports whether the question belongs to the sales domain.
// On record-fetch failure it degrades to the static-vocabulary result.
func (c *Classifier) IsSalesRelated(ctx context.Context, question string) bool {
	questionLower := strings.ToLower(question)
	words := strings.Fields(questionLower)
	if len(words) == 0 {
		return false
	}

	// Token-level fuzzy match against the static vocabulary.
	for _, word := range words {
		if hasCloseMatch(word, salesKeywords, staticMatchCutoff) {
			return true
		}
	}

	// Substring containment handles multi-word phrases and partials.
	for _, keyword := range salesKeywords {
		if strings.Contains(questionLower, keyword) {
			return true
		}
	}

	// Last resort: vocabulary harvested from the live record set.
	records, err := c.store.FetchAll(ctx)
	if err != nil {
		log.Printf("Record fetch failed during classification, using static keywords only: %v", err)
		return false
	}

	dynamic := dynamicVocabulary(records)
	for _, word := range words {
		if _, ok := dynamic[word]; ok {
			return true
		}
	}
	vocabList := make([]string, 0, len(dynamic))
	for v := range dynamic {
		vocabList = append(vocabList, v)
	}
	for _, word := range words {
		if hasCloseMatch(word, vocabList, dynamicMatchCutoff) {
			return true
		}
	}

	return false
}

// dynamicVocabulary collects the distinct agent, customer, weave, quality,
// composition and status values from the record set.
func dynamicVocabulary(records []models.SalesRecord) map[string]struct{} {
	vocab := make(map[string]struct{})
	add := func(s string) {
		s = strings.TrimSpace(strings.ToLower(s))
		if s != "" {
			vocab[s] = struct{}{}
		}
	}
	for _, r := range records {
		add(r.AgentName)
		add(r.CustomerName)
		add(r.Weave)
		add(r.Quality)
		add(r.Composition)
		add(r.Status)
	}
	return vocab
}
