package prompts

import (
	"embed"
	"log/slog"
	"strings"

	"github.com/myrjola/interrogation-room/internal/errors"
)

// ErrPromptNotFound is returned when no prompt file exists for the name.
var ErrPromptNotFound = errors.NewSentinel("prompt not found")

// Well-known prompt names.
const (
	Suspect          = "suspect_system_prompt"
	Assistant        = "assistant_system_prompt"
	SummaryGenerator = "summary_prompt"
)

//go:embed files/*.txt
var files embed.FS

// Get returns the prompt with the given name, trimmed of trailing whitespace.
func Get(name string) (string, error) {
	content, err := files.ReadFile("files/" + name + ".txt")
	if err != nil {
		return "", errors.Wrap(errors.Join(ErrPromptNotFound, err), "read prompt", slog.String("name", name))
	}
	return strings.TrimRight(string(content), "\n"), nil
}
