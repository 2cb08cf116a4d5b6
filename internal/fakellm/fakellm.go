// Package fakellm provides a scripted provider.Model for tests.
package fakellm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/provider"
	"github.com/go-openapi/strfmt"
)

// ErrExhausted is reported when the model is asked for more replies than it was scripted with.
var ErrExhausted = errors.New("fakellm: no scripted replies left")

// Reply scripts one completion.
type Reply struct {
	Content   string
	ToolCalls []messages.ToolCallData
	// Chunks overrides how Content is split when streaming. By default every
	// word, including its trailing space, is one chunk.
	Chunks []string
	Usage  memory.Usage
	Err    error
	// HangAfter makes a streaming reply block after that many chunks until
	// the context is cancelled. Zero disables it.
	HangAfter int
}

// Call is a recorded request.
type Call struct {
	Params   provider.CompletionParams
	Messages memory.History
}

// Model implements both provider.Model and provider.Provider.
type Model struct {
	name    string
	respond func(Call) Reply

	mu      sync.Mutex
	replies []Reply
	calls   []Call
}

// New returns a model that answers with replies in order.
func New(replies ...Reply) *Model {
	return &Model{name: "fake-model", replies: replies}
}

// NewFunc returns a model that computes every reply from the request.
func NewFunc(fn func(Call) Reply) *Model {
	return &Model{name: "fake-model", respond: fn}
}

func (m *Model) Name() string                { return m.name }
func (m *Model) Provider() provider.Provider { return m }

// Calls returns the recorded requests.
func (m *Model) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent request.
func (m *Model) LastCall() Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}
	}
	return m.calls[len(m.calls)-1]
}

func (m *Model) next(call Call) Reply {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	if m.respond != nil {
		m.mu.Unlock()
		return m.respond(call)
	}
	defer m.mu.Unlock()
	if len(m.replies) == 0 {
		return Reply{Err: ErrExhausted}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	return r
}

func (m *Model) ChatCompletion(ctx context.Context, params provider.CompletionParams) (<-chan provider.StreamEvent, error) {
	if params.Thread == nil {
		return nil, provider.ErrNoThread
	}
	reply := m.next(Call{Params: params, Messages: params.Thread.Messages()})

	events := make(chan provider.StreamEvent)
	go func() {
		defer close(events)
		turnID := params.Thread.ID()
		send := func(ev provider.StreamEvent) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}
		fail := func(err error) {
			// the consumer may already be gone when the context is done
			select {
			case events <- provider.Error{RunID: params.RunID, TurnID: turnID, Err: err, Timestamp: strfmt.DateTime(time.Now())}:
			case <-time.After(time.Second):
			}
		}

		if reply.Err != nil {
			fail(reply.Err)
			return
		}

		usage := reply.Usage
		if usage.IsZero() {
			usage = memory.Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2, Requests: 1}
		}

		if params.Stream {
			if !send(provider.Delim{RunID: params.RunID, TurnID: turnID, Delim: provider.DelimStart}) {
				fail(ctx.Err())
				return
			}
			for i, c := range reply.chunks() {
				if reply.HangAfter > 0 && i == reply.HangAfter {
					<-ctx.Done()
					fail(ctx.Err())
					return
				}
				if !send(provider.Chunk[messages.AssistantMessage]{RunID: params.RunID, TurnID: turnID, Chunk: messages.AssistantMessage{Content: c}}) {
					fail(ctx.Err())
					return
				}
			}
			if reply.HangAfter > 0 {
				<-ctx.Done()
				fail(ctx.Err())
				return
			}
			if !send(provider.Delim{RunID: params.RunID, TurnID: turnID, Delim: provider.DelimEnd}) {
				fail(ctx.Err())
				return
			}
		}

		if len(reply.ToolCalls) > 0 {
			send(provider.Response[messages.ToolCallMessage]{
				RunID: params.RunID, TurnID: turnID,
				Response:  messages.ToolCallMessage{Content: reply.Content, ToolCalls: reply.ToolCalls},
				Usage:     usage,
				Timestamp: strfmt.DateTime(time.Now()),
			})
			return
		}
		send(provider.Response[messages.AssistantMessage]{
			RunID: params.RunID, TurnID: turnID,
			Response:  messages.AssistantMessage{Content: reply.Content},
			Usage:     usage,
			Timestamp: strfmt.DateTime(time.Now()),
		})
	}()
	return events, nil
}

func (r Reply) chunks() []string {
	if r.Chunks != nil {
		return r.Chunks
	}
	if r.Content == "" {
		return nil
	}
	words := strings.SplitAfter(r.Content, " ")
	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Text returns the text of every message in a recorded call.
func (c Call) Text() []string {
	out := make([]string, 0, len(c.Messages))
	for _, m := range c.Messages {
		out = append(out, m.Text())
	}
	return out
}

// Roles returns the role of every message in a recorded call.
func (c Call) Roles() []string {
	out := make([]string, 0, len(c.Messages))
	for _, m := range c.Messages {
		out = append(out, m.Role())
	}
	return out
}
