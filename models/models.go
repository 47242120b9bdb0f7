package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Core Models ---

// Flexible is a float64 that also accepts quoted numbers. The live sales feed
// is inconsistent about whether quantity and rate arrive as JSON numbers or
// strings, so both forms must decode.
type Flexible float64

func (f *Flexible) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = Flexible(v)
	return nil
}

func (f Flexible) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// SalesRecord is one order as delivered by the record source. Read-only to
// everything downstream of the store.
type SalesRecord struct {
	ID           string   `json:"_id"`
	Date         string   `json:"date"`
	Weave        string   `json:"weave"`
	Quality      string   `json:"quality"`
	Composition  string   `json:"composition"`
	Quantity     Flexible `json:"quantity"`
	Rate         Flexible `json:"rate"`
	Status       string   `json:"status"`
	AgentName    string   `json:"agentName"`
	CustomerName string   `json:"customerName"`
}

// --- Chat Sessions ---

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession groups an ordered sequence of turns under one id.
type ChatSession struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Messages    []ChatMessage `json:"messages"`
	CreatedAt   time.Time     `json:"created_at"`
	LastUpdated time.Time     `json:"last_updated"`
}
