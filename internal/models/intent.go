package models

const (
	IntentCheckSlots     = "check_slots"
	IntentFindCentres    = "find_centres"
	IntentGetAddress     = "get_address"
	IntentCountAcademies = "count_academies"
)

// IntentRecord is the structured output of the language-model extractor.
// The extractor has no schema guarantee, so every field except Intent is
// optional and consumers must handle nil.
type IntentRecord struct {
	Intent     string  `json:"intent"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	TargetName *string `json:"target_name"`
	Limit      *int    `json:"limit"`
}
