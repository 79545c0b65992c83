package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/myrjola/interrogation-room/internal/errors"
)

// ErrEmptyMessage is returned when a log entry would be created from an empty
// or whitespace-only message.
var ErrEmptyMessage = errors.NewSentinel("message must not be empty")

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Thread identifies one of the two independent conversation tracks of a Case.
type Thread string

const (
	ThreadSuspect   Thread = "suspect"
	ThreadAssistant Thread = "assistant"
)

// ErrInvalidStatus is returned when a case status transition names an unknown
// status.
var ErrInvalidStatus = errors.NewSentinel("invalid case status")

type CaseStatus string

const (
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusConfessed  CaseStatus = "confessed"
	CaseStatusFailed     CaseStatus = "failed"
)

// Valid reports whether s names a known case status.
func (s CaseStatus) Valid() bool {
	switch s {
	case CaseStatusInProgress, CaseStatusConfessed, CaseStatusFailed:
		return true
	}
	return false
}

// TokenUsage counts the tokens consumed by one or more generations.
type TokenUsage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
	TotalTokens  int `json:"totalTokens"`
}

// NewTokenUsage builds a TokenUsage whose total is input+output.
func NewTokenUsage(inputTokens, outputTokens int) TokenUsage {
	return TokenUsage{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
	}
}

// Add accumulates another usage into this one.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}

// LogEntry is one turn in a thread's append-only transcript. Entries are never
// edited or removed once appended.
type LogEntry struct {
	Role       Role        `json:"role"`
	Message    string      `json:"message"`
	CreatedAt  time.Time   `json:"createdAt"`
	TokenUsage *TokenUsage `json:"tokenUsage,omitempty"`
}

// NewLogEntry constructs a LogEntry. The message must contain something other
// than whitespace. Entries created from user input carry no token usage;
// entries created from a completed generation pass the aggregated usage.
func NewLogEntry(role Role, message string, createdAt time.Time, usage *TokenUsage) (LogEntry, error) {
	if strings.TrimSpace(message) == "" {
		return LogEntry{}, errors.Wrap(ErrEmptyMessage, "new log entry")
	}
	return LogEntry{
		Role:       role,
		Message:    message,
		CreatedAt:  createdAt,
		TokenUsage: usage,
	}, nil
}

// Case is one interrogation session scoped to a single user and incident
// summary. The suspect and assistant logs are independent append-only
// sequences.
type Case struct {
	CaseID               string     `json:"caseId"`
	UserID               string     `json:"userId"`
	SummaryID            string     `json:"summaryId"`
	Status               CaseStatus `json:"status"`
	CreatedAt            time.Time  `json:"createdAt"`
	LastUpdated          time.Time  `json:"lastUpdated"`
	SuspectLog           []LogEntry `json:"suspectLog"`
	AssistantLog         []LogEntry `json:"assistantLog"`
	CumulativeTokenUsage TokenUsage `json:"cumulativeTokenUsage"`
}

// CaseID derives the deterministic case identity for a summary and user. The
// same pair always maps to the same case, which makes case creation
// idempotent.
func CaseID(summaryID, userID string) string {
	return fmt.Sprintf("%s_%s", summaryID, userID)
}

// Log returns the entries of the given thread in append order.
func (c *Case) Log(thread Thread) []LogEntry {
	if thread == ThreadAssistant {
		return c.AssistantLog
	}
	return c.SuspectLog
}
