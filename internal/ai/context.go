package ai

import (
	"strings"

	"github.com/myrjola/interrogation-room/internal/models"
)

// ContentBlock is one role-tagged unit of conversation context passed to the
// completion engine.
type ContentBlock struct {
	Role models.Role
	Text string
}

// BuildContext converts a thread's log into completion-engine context.
//
// The result is deterministic for the same inputs and the inputs are never
// mutated: replaying the same log reproduces the same context byte for byte.
// Block order is fixed: the serialized summary first when one is given, then
// every log entry in append order with whitespace-only messages skipped and
// the rest trimmed, then the extra instruction last when one is given. The
// summary and the extra instruction are attributed to the model role.
func BuildContext(summary *models.Summary, logs []models.LogEntry, extraInstruction string) ([]ContentBlock, error) {
	blocks := make([]ContentBlock, 0, len(logs)+2)

	if summary != nil {
		serialized, err := summary.JSON()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, ContentBlock{Role: models.RoleModel, Text: serialized})
	}

	for _, entry := range logs {
		message := strings.TrimSpace(entry.Message)
		if message == "" {
			continue
		}
		blocks = append(blocks, ContentBlock{Role: entry.Role, Text: message})
	}

	if extraInstruction != "" {
		blocks = append(blocks, ContentBlock{Role: models.RoleModel, Text: extraInstruction})
	}

	return blocks, nil
}
