// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiMilestoneService implements adapter.MilestoneSuggester using Google Gemini.
type GeminiMilestoneService struct {
	apiKey    string
	modelName string
}

// NewGeminiMilestoneService creates a new Gemini milestone service instance.
func NewGeminiMilestoneService(apiKey, modelName string) *GeminiMilestoneService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiMilestoneService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is configured.
func (s *GeminiMilestoneService) IsAvailable() bool {
	return s.apiKey != ""
}

// SuggestMilestones asks Gemini for request.Count milestones.
func (s *GeminiMilestoneService) SuggestMilestones(ctx context.Context, request adapter.MilestoneSuggestionRequest) ([]adapter.MilestoneSuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildMilestonePrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	suggestions, err := parseMilestoneResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestions, nil
}

func buildMilestonePrompt(request adapter.MilestoneSuggestionRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a personal finance coach. Break a savings goal into motivating milestones.\n\n")
	sb.WriteString(fmt.Sprintf("Goal: %s\n", request.GoalName))
	sb.WriteString(fmt.Sprintf("Target amount (minor units): %d\n", request.TargetAmount))
	sb.WriteString(fmt.Sprintf("Already saved (minor units): %d\n", request.CurrentAmount))
	if request.TargetDate != nil {
		sb.WriteString(fmt.Sprintf("Target date: %s\n", request.TargetDate.Format("2006-01-02")))
	}
	sb.WriteString(fmt.Sprintf(`
Return exactly %d milestones as a JSON array. Each element must be:
{
  "name": "short milestone name",
  "advice": "one sentence of practical saving advice",
  "target_percentage": number between 10 and 95
}

Percentages must be strictly increasing. Return only the JSON array, no extra text.
`, request.Count))

	return sb.String()
}

// geminiMilestone represents the raw response from Gemini.
type geminiMilestone struct {
	Name             string  `json:"name"`
	Advice           string  `json:"advice"`
	TargetPercentage float64 `json:"target_percentage"`
}

func parseMilestoneResponse(resp *genai.GenerateContentResponse) ([]adapter.MilestoneSuggestion, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	return decodeMilestones(textContent)
}

// decodeMilestones parses the JSON array, tolerating a markdown code fence.
func decodeMilestones(textContent string) ([]adapter.MilestoneSuggestion, error) {
	textContent = strings.TrimSpace(textContent)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw []geminiMilestone
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	suggestions := make([]adapter.MilestoneSuggestion, 0, len(raw))
	for _, m := range raw {
		suggestions = append(suggestions, adapter.MilestoneSuggestion{
			Name:             m.Name,
			Advice:           m.Advice,
			TargetPercentage: m.TargetPercentage,
		})
	}
	return suggestions, nil
}
