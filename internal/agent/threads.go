package agent

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// Conversations keep a sliding window of recent messages so long threads
// cannot grow without bound.
const maxThreadMessages = 20

// threadStore holds conversation history in memory, keyed by thread ID.
// History does not survive a restart; the thread ID in each response lets a
// client continue a conversation while the process lives.
type threadStore struct {
	mu      sync.Mutex
	threads map[string][]openai.ChatCompletionMessage
}

func newThreadStore() *threadStore {
	return &threadStore{threads: map[string][]openai.ChatCompletionMessage{}}
}

// history returns a copy of a thread's messages, already trimmed.
func (t *threadStore) history(threadID string) []openai.ChatCompletionMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs := trimHistory(t.threads[threadID])
	out := make([]openai.ChatCompletionMessage, len(msgs))
	copy(out, msgs)
	return out
}

// save replaces a thread's history, trimmed to the window.
func (t *threadStore) save(threadID string, msgs []openai.ChatCompletionMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.threads[threadID] = trimHistory(msgs)
}

// trimHistory keeps system messages plus the most recent window of
// everything else.
func trimHistory(msgs []openai.ChatCompletionMessage) []openai.ChatCompletionMessage {
	if len(msgs) <= maxThreadMessages {
		return msgs
	}

	var system, rest []openai.ChatCompletionMessage
	for _, m := range msgs {
		if m.Role == openai.ChatMessageRoleSystem {
			system = append(system, m)
		} else {
			rest = append(rest, m)
		}
	}
	if len(rest) > maxThreadMessages {
		rest = rest[len(rest)-maxThreadMessages:]
	}
	// The window must not open mid tool exchange: a tool message without its
	// preceding assistant tool_calls message is rejected upstream.
	for len(rest) > 0 && rest[0].Role == openai.ChatMessageRoleTool {
		rest = rest[1:]
	}
	return append(system, rest...)
}

func newThreadID() string {
	return "thread_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
