package testhelpers

import (
	"context"
	"io"
	"sync"

	"github.com/myrjola/interrogation-room/internal/ai"
)

// FakeEngine is a scripted [ai.Engine] for tests. Every call to OpenStream
// replays Chunks in order and then ends the stream with RecvErr, or io.EOF
// when RecvErr is nil.
type FakeEngine struct {
	mu sync.Mutex

	// Chunks are replayed in order by every opened stream.
	Chunks []ai.Chunk
	// OpenErr fails OpenStream before any chunk is produced.
	OpenErr error
	// RecvErr, when set, terminates the stream mid-flight instead of io.EOF.
	RecvErr error
	// CompleteText is returned by Complete.
	CompleteText string
	// CompleteErr fails Complete.
	CompleteErr error

	// LastSystemPrompt and LastBlocks record the most recent request.
	LastSystemPrompt string
	LastBlocks       []ai.ContentBlock
	// OpenedStreams counts OpenStream calls that succeeded.
	OpenedStreams int
}

var _ ai.Engine = (*FakeEngine)(nil)

func (e *FakeEngine) OpenStream(_ context.Context, systemPrompt string, blocks []ai.ContentBlock) (ai.ChunkStream, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.LastSystemPrompt = systemPrompt
	e.LastBlocks = blocks
	if e.OpenErr != nil {
		return nil, e.OpenErr
	}
	e.OpenedStreams++
	return &scriptedStream{chunks: e.Chunks, recvErr: e.RecvErr}, nil
}

func (e *FakeEngine) Complete(_ context.Context, systemPrompt string, blocks []ai.ContentBlock) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.LastSystemPrompt = systemPrompt
	e.LastBlocks = blocks
	if e.CompleteErr != nil {
		return "", e.CompleteErr
	}
	return e.CompleteText, nil
}

type scriptedStream struct {
	chunks  []ai.Chunk
	recvErr error
	next    int
	closed  bool
}

func (s *scriptedStream) Recv() (ai.Chunk, error) {
	if s.next >= len(s.chunks) {
		if s.recvErr != nil {
			return ai.Chunk{}, s.recvErr
		}
		return ai.Chunk{}, io.EOF
	}
	chunk := s.chunks[s.next]
	s.next++
	return chunk, nil
}

func (s *scriptedStream) Close() error {
	s.closed = true
	return nil
}
