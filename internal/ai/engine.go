package ai

import (
	"context"

	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
)

// ErrCompletionEngine marks failures of the upstream text-generation service.
var ErrCompletionEngine = errors.NewSentinel("completion engine failure")

// Chunk is one streamed fragment of a generation. Usage is nil for ordinary
// text fragments; engines that report token usage attach it to the chunks
// that carry usage metadata, typically the last one.
type Chunk struct {
	Text  string
	Usage *models.TokenUsage
}

// ChunkStream is an open streaming generation. Recv returns io.EOF when the
// stream has completed normally.
type ChunkStream interface {
	Recv() (Chunk, error)
	Close() error
}

// Engine is the completion-engine collaborator.
type Engine interface {
	// OpenStream starts a streaming generation for the given system prompt
	// and conversation context.
	OpenStream(ctx context.Context, systemPrompt string, blocks []ContentBlock) (ChunkStream, error)
	// Complete runs a generation to completion and returns the full text.
	Complete(ctx context.Context, systemPrompt string, blocks []ContentBlock) (string, error)
}
