package ai

import (
	"context"
	"io"
	"iter"
	"strings"

	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/models"
)

// CompleteFunc is invoked exactly once when a streamed generation finishes
// normally, with the full buffered text and the summed token usage.
type CompleteFunc func(fullText string, usage models.TokenUsage) error

// StreamCompletion opens a streaming generation and returns its chunks as a
// lazy sequence.
//
// Chunks are yielded in arrival order with trailing newlines stripped, and
// simultaneously accumulated into an internal buffer. When the upstream
// stream ends, onComplete is invoked synchronously as the final step of the
// sequence, so callers must fully drain the sequence before relying on it
// having run. If the upstream stream fails mid-flight, the failure is yielded
// to the consumer and onComplete is never invoked: partial output is not
// passed off as a complete reply. The same holds when the consumer stops
// iterating early, e.g. because the client disconnected.
//
// An error opening the stream is returned directly so that callers can still
// fail the whole request instead of a half-written response.
func StreamCompletion(
	ctx context.Context,
	engine Engine,
	systemPrompt string,
	blocks []ContentBlock,
	onComplete CompleteFunc,
) (iter.Seq2[string, error], error) {
	stream, err := engine.OpenStream(ctx, systemPrompt, blocks)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrCompletionEngine, err), "open completion stream")
	}

	seq := func(yield func(string, error) bool) {
		defer func() {
			_ = stream.Close()
		}()

		var (
			buffer strings.Builder
			usage  models.TokenUsage
		)
		for {
			chunk, recvErr := stream.Recv()
			if errors.Is(recvErr, io.EOF) {
				if onComplete == nil {
					return
				}
				if completeErr := onComplete(buffer.String(), usage); completeErr != nil {
					yield("", errors.Wrap(completeErr, "finalize completion"))
				}
				return
			}
			if recvErr != nil {
				yield("", errors.Wrap(errors.Join(ErrCompletionEngine, recvErr), "receive completion chunk"))
				return
			}

			if chunk.Usage != nil {
				usage = usage.Add(*chunk.Usage)
			}

			text := strings.TrimRight(chunk.Text, "\n")
			if text == "" {
				continue
			}
			buffer.WriteString(text)
			if !yield(text, nil) {
				return
			}
		}
	}

	return seq, nil
}
