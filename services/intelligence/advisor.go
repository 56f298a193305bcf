// File: services/intelligence/advisor.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"clubsync/models"
	"clubsync/utils"

	"go.uber.org/zap"
)

// textGenerator is the slice of GeminiClient the advisor needs; tests
// substitute a canned generator.
type textGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiAdvisor scores candidate slots through a generative model. Every
// call is bounded by Timeout regardless of the caller's context.
type GeminiAdvisor struct {
	gen     textGenerator
	Timeout time.Duration
}

// NewGeminiAdvisor wires a GeminiClient as an Advisor.
func NewGeminiAdvisor(client *GeminiClient, timeout time.Duration) *GeminiAdvisor {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GeminiAdvisor{gen: client, Timeout: timeout}
}

// ScoreSlots submits the candidate summary and parses the structured reply.
func (a *GeminiAdvisor) ScoreSlots(ctx context.Context, req *models.AdvisorRequest) (*models.AdvisorResponse, error) {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	prompt, err := buildAdvisorPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("build advisor prompt: %w", err)
	}

	raw, err := a.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("advisor generate: %w", err)
	}

	resp, err := parseAdvisorResponse(raw)
	if err != nil {
		logger.Warn("advisor returned unparseable response",
			zap.Error(err), zap.Int("raw_len", len(raw)))
		return nil, err
	}
	return resp, nil
}

// buildAdvisorPrompt renders the request as JSON with scoring instructions.
func buildAdvisorPrompt(req *models.AdvisorRequest) (string, error) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("You are a meeting-scheduling analyst for a student club platform.\n")
	sb.WriteString("Evaluate each candidate meeting slot below for the stated objective and constraints.\n")
	sb.WriteString("Candidates are pre-ranked by a local heuristic; you may reorder them.\n\n")
	sb.Write(payload)
	sb.WriteString("\n\nRespond with JSON only, no prose outside the JSON, in exactly this shape:\n")
	sb.WriteString(`{"analysis": "<one short paragraph>", "slots": [{"index": <submitted index>, "score": <integer 0-100>, "reasoning": "<one sentence>"}]}`)
	sb.WriteString("\nEvery submitted index must appear exactly once in slots.")
	return sb.String(), nil
}

// parseAdvisorResponse tolerates fenced code blocks and leading prose around
// the JSON object before giving up.
func parseAdvisorResponse(raw string) (*models.AdvisorResponse, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Fall back to the outermost JSON object if the model added prose.
	if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON object in advisor response")
		}
		text = text[start : end+1]
	}

	var resp models.AdvisorResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("decode advisor response: %w", err)
	}
	if len(resp.Slots) == 0 {
		return nil, fmt.Errorf("advisor response contains no slot scores")
	}
	for i := range resp.Slots {
		if resp.Slots[i].Score < 0 {
			resp.Slots[i].Score = 0
		}
		if resp.Slots[i].Score > 100 {
			resp.Slots[i].Score = 100
		}
	}
	return &resp, nil
}
