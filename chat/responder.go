package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Responder turns a prompt into free text. Implementations may be slow and
// may fail; callers convert failures into user-facing error strings.
type Responder interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiResponder answers prompts with the Gemini API.
type GeminiResponder struct {
	APIKey string
	Model  string
}

// NewGeminiResponder creates a responder for the given API key.
func NewGeminiResponder(apiKey string) *GeminiResponder {
	return &GeminiResponder{
		APIKey: apiKey,
		Model:  "models/gemini-2.0-flash",
	}
}

// Generate sends the prompt to Gemini and returns the first candidate's text.
func (g *GeminiResponder) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("model returned an empty response")
	}

	return fmt.Sprint(resp.Candidates[0].Content.Parts[0]), nil
}
