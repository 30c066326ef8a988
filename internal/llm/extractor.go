package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/tida-sports/AcademyBotBack/internal/models"
	"google.golang.org/api/option"
)

const (
	defaultModelID = "gemini-2.5-flash"
	defaultTimeout = 10 * time.Second
)

// GeminiExtractor pulls a structured IntentRecord out of free user text with
// a Gemini model. It never returns an error: any failure falls back to
// DefaultIntentRecord so a dead or misbehaving model degrades the assistant
// to plain discovery instead of breaking requests.
type GeminiExtractor struct {
	client  *genai.Client
	modelID string
	timeout time.Duration
	now     func() time.Time
}

func NewGeminiExtractor(
	ctx context.Context,
	apiKey string,
	modelID string,
	timeout time.Duration,
) (*GeminiExtractor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = defaultModelID
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create gemini client: %w", err)
	}

	return &GeminiExtractor{
		client:  client,
		modelID: modelID,
		timeout: timeout,
		now:     time.Now,
	}, nil
}

func (e *GeminiExtractor) Extract(ctx context.Context, message string) models.IntentRecord {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	model := e.client.GenerativeModel(e.modelID)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(message, e.now())))
	if err != nil {
		log.Printf("llm: intent extraction failed: %v", err)
		return DefaultIntentRecord()
	}

	text, err := responseText(resp)
	if err != nil {
		log.Printf("llm: %v", err)
		return DefaultIntentRecord()
	}

	record, err := parseIntentPayload(text)
	if err != nil {
		log.Printf("llm: malformed intent payload: %v", err)
		return DefaultIntentRecord()
	}
	return record
}

func (e *GeminiExtractor) Close() error {
	return e.client.Close()
}

// DisabledExtractor stands in when no API key is configured; every message
// resolves to the discovery fallback.
type DisabledExtractor struct{}

func (DisabledExtractor) Extract(_ context.Context, _ string) models.IntentRecord {
	return DefaultIntentRecord()
}

// DefaultIntentRecord is the safe fallback the orchestrator can always act on.
func DefaultIntentRecord() models.IntentRecord {
	limit := 5
	return models.IntentRecord{
		Intent: models.IntentFindCentres,
		Limit:  &limit,
	}
}

func buildPrompt(message string, now time.Time) string {
	return fmt.Sprintf(`You are a strict entity extractor.
Current Date: %s

Task: Extract INTENT, DATE, TIME, TARGET_NAME, and LIMIT.

Rules:
1. INTENT: "check_slots", "find_centres" (for general search), "get_address", "count_academies".
2. TARGET_NAME: The specific name of the academy (e.g. "YMCA", "Black Dragon").
   CRITICAL: DO NOT extract generic location words like "near me", "nearby", "closest", "around here", "center", "academy" as the target_name.
   If the user says "academies near me", target_name must be null.
3. LIMIT: Integer only.

User Query: "%s"

Return JSON only:
{
  "intent": "string",
  "date": "YYYY-MM-DD" or null,
  "time": "HH:MM" or null,
  "limit": integer or null,
  "target_name": "string" or null
}`, now.Format("2006-01-02"), message)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("gemini returned empty content")
	}

	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	return builder.String(), nil
}

// intentPayload mirrors the JSON the model is asked to emit. Limit stays raw
// because models sometimes quote integers.
type intentPayload struct {
	Intent     string          `json:"intent"`
	Date       *string         `json:"date"`
	Time       *string         `json:"time"`
	TargetName *string         `json:"target_name"`
	Limit      json.RawMessage `json:"limit"`
}

func parseIntentPayload(raw string) (models.IntentRecord, error) {
	trimmed := stripCodeFence(raw)

	var payload intentPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return models.IntentRecord{}, err
	}

	record := models.IntentRecord{
		Intent:     strings.TrimSpace(payload.Intent),
		Date:       payload.Date,
		Time:       payload.Time,
		TargetName: payload.TargetName,
	}
	if limit, ok := parseLimit(payload.Limit); ok {
		record.Limit = &limit
	}
	return record, nil
}

func parseLimit(raw json.RawMessage) (int, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, false
	}

	var number int
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, true
	}

	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		if number, err := strconv.Atoi(strings.TrimSpace(quoted)); err == nil {
			return number, true
		}
	}
	return 0, false
}

func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
