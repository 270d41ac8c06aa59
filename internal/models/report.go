package models

// Report frequencies accepted in trigger payloads and shelter settings.
const (
	FrequencyDaily   = "Daily"
	FrequencyWeekly  = "Weekly"
	FrequencyMonthly = "Monthly"
)

// ReportRequest is the decoded trigger payload for one report run.
// It lives for a single invocation and is never persisted.
type ReportRequest struct {
	ShelterID string `json:"shelterId"`
	Email     string `json:"email"`
	Frequency string `json:"frequency"`
}

// ActivityRecord is one animal's activity inside a report window: the
// notes, logs and photos that survived the window filter plus the animal's
// full tag list. Built fresh per run and discarded once the CSV and digest
// are produced.
type ActivityRecord struct {
	ID      string
	Name    string
	Species string
	Notes   []Note
	Logs    []Log
	Photos  []Photo
	Tags    []Tag
}
