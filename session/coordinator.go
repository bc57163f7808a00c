// Package session orchestrates the active conversation: submitting
// prompts, awaiting replies, archiving into history, and loading past
// conversations back in.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"domatui/audio"
	"domatui/chat"
	"domatui/generation"
	"domatui/storage"
)

// apologyReply is appended in place of a generated reply when the backend
// fails. The failure itself is surfaced separately as a transient notice.
const apologyReply = "I apologize, but I encountered an issue generating a response. Please try again."

// Reply reports the outcome of one generation request.
type Reply struct {
	// Message is the assistant message appended to the active log. Unset
	// when Dropped.
	Message chat.Message
	// Dropped means the active conversation changed while the request was
	// in flight; the reply was discarded without touching any log.
	Dropped bool
	// Err is the backend failure, if any. The apology message is already
	// appended when Err is set and Dropped is false.
	Err error
}

// request is one queued generation call. epoch pins it to the conversation
// that was active when it was issued.
type request struct {
	epoch  int
	prompt string
}

// Coordinator wires the active conversation, the history store, the
// text-generation backend, and the transcriber together.
//
// Replies are serialized: a single dispatch goroutine consumes queued
// requests in issue order, so overlapping submissions append their replies
// in the order the prompts were sent, never in backend completion order.
type Coordinator struct {
	history     *storage.HistoryStore
	generator   generation.Generator
	transcriber generation.Transcriber

	mu     sync.Mutex
	active *chat.Conversation
	epoch  int

	queue   chan request
	replies chan Reply
	closed  chan struct{}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTranscriber enables voice submissions.
func WithTranscriber(t generation.Transcriber) Option {
	return func(c *Coordinator) { c.transcriber = t }
}

// NewCoordinator starts with a fresh empty conversation and launches the
// dispatch goroutine. Call Close when done.
func NewCoordinator(history *storage.HistoryStore, generator generation.Generator, opts ...Option) *Coordinator {
	c := &Coordinator{
		history:   history,
		generator: generator,
		active:    chat.NewConversation(),
		queue:     make(chan request, 64),
		replies:   make(chan Reply, 64),
		closed:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.dispatch()
	return c
}

// Close stops the dispatch goroutine. Queued requests are abandoned.
func (c *Coordinator) Close() {
	close(c.closed)
}

// Replies delivers the outcome of each submission, in issue order. The UI
// consumes this channel.
func (c *Coordinator) Replies() <-chan Reply {
	return c.replies
}

// Submit appends the user message synchronously - it is visible before the
// backend is even contacted - and queues one generation request for it.
// Empty or whitespace-only text is rejected before any state changes.
func (c *Coordinator) Submit(text string) (chat.Message, error) {
	c.mu.Lock()
	msg, err := c.active.Append(text, chat.SenderUser)
	if err != nil {
		c.mu.Unlock()
		return chat.Message{}, err
	}
	req := request{epoch: c.epoch, prompt: text}
	c.mu.Unlock()

	select {
	case c.queue <- req:
	case <-c.closed:
		return msg, errors.New("coordinator is closed")
	}
	return msg, nil
}

// QuickPrompt submits a canned prompt. Same protocol as Submit, no delay.
func (c *Coordinator) QuickPrompt(prompt string) (chat.Message, error) {
	return c.Submit(prompt)
}

// SubmitRecording transcribes a finished clip and submits the text.
func (c *Coordinator) SubmitRecording(ctx context.Context, clip *audio.Clip) (chat.Message, error) {
	if c.transcriber == nil {
		return chat.Message{}, errors.New("no transcriber configured")
	}
	text, err := c.transcriber.Transcribe(ctx, clip)
	if err != nil {
		return chat.Message{}, fmt.Errorf("failed to transcribe recording: %w", err)
	}
	return c.Submit(text)
}

// dispatch processes generation requests strictly in issue order. A reply
// that resolves after the conversation it belongs to was replaced is
// dropped: the archived snapshot stays immutable and the new log never
// sees a stray assistant message.
func (c *Coordinator) dispatch() {
	for {
		select {
		case <-c.closed:
			return
		case req := <-c.queue:
			text, genErr := c.generator.Generate(context.Background(), req.prompt)

			c.mu.Lock()
			if req.epoch != c.epoch {
				c.mu.Unlock()
				c.deliver(Reply{Dropped: true, Err: genErr})
				continue
			}
			content := text
			if genErr != nil {
				content = apologyReply
			}
			msg, appendErr := c.active.Append(content, chat.SenderAssistant)
			c.mu.Unlock()

			if appendErr != nil {
				// Backend returned an empty reply; treat like a failure.
				c.deliver(Reply{Dropped: true, Err: errors.Join(genErr, appendErr)})
				continue
			}
			c.deliver(Reply{Message: msg, Err: genErr})
		}
	}
}

func (c *Coordinator) deliver(r Reply) {
	select {
	case c.replies <- r:
	case <-c.closed:
	}
}

// StartNew archives the current conversation and activates a fresh one.
// An empty log archives nothing and gains no identity. A log that was
// loaded from history keeps its identity; its stored snapshot is brought
// up to date instead of duplicated.
func (c *Coordinator) StartNew() (*chat.Conversation, error) {
	c.mu.Lock()
	prev := c.active
	c.active = chat.NewConversation()
	c.epoch++
	c.mu.Unlock()

	if prev.Empty() {
		return c.Active(), nil
	}
	if _, err := c.history.Archive(prev); err != nil {
		return c.Active(), fmt.Errorf("failed to archive conversation: %w", err)
	}
	return c.Active(), nil
}

// LoadPast activates a stored conversation verbatim. The current live
// conversation is archived first under the same rules as StartNew, so
// switching never silently discards messages. History itself is not
// mutated by the load.
func (c *Coordinator) LoadPast(id string) (*chat.Conversation, error) {
	snap, err := c.history.Get(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	prev := c.active
	c.active = snap
	c.epoch++
	c.mu.Unlock()

	if !prev.Empty() {
		if _, err := c.history.Archive(prev); err != nil {
			return c.Active(), fmt.Errorf("failed to archive previous conversation: %w", err)
		}
	}
	return c.Active(), nil
}

// Active returns a snapshot of the current conversation for rendering.
func (c *Coordinator) Active() *chat.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active.Clone()
}
