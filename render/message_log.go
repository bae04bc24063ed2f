package render

import (
	"strings"
	"sync"
)

// MessageLog keeps the most recent lines written to it. It is an io.Writer, so
// a log.Logger can feed generation progress into a viewer.
type MessageLog struct {
	mu          sync.Mutex
	messages    []string
	maxMessages int
	partial     string
}

// NewMessageLog creates a log holding up to capacity lines
func NewMessageLog(capacity int) *MessageLog {
	return &MessageLog{maxMessages: max(capacity, 1)}
}

// Add appends a message
func (ml *MessageLog) Add(message string) {
	ml.mu.Lock()
	ml.add(message)
	ml.mu.Unlock()
}

func (ml *MessageLog) add(message string) {
	ml.messages = append(ml.messages, message)

	// Truncate if we have too many messages
	if len(ml.messages) > ml.maxMessages {
		ml.messages = ml.messages[len(ml.messages)-ml.maxMessages:]
	}
}

// Write splits p into lines. A trailing fragment waits for its newline.
func (ml *MessageLog) Write(p []byte) (int, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	text := ml.partial + string(p)
	lines := strings.Split(text, "\n")
	ml.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		ml.add(line)
	}
	return len(p), nil
}

// RecentMessages returns up to n messages, newest first
func (ml *MessageLog) RecentMessages(n int) []string {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	n = min(n, len(ml.messages))
	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = ml.messages[len(ml.messages)-1-i]
	}
	return result
}

// Len returns the number of stored messages
func (ml *MessageLog) Len() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}

// Clear drops every message
func (ml *MessageLog) Clear() {
	ml.mu.Lock()
	ml.messages = nil
	ml.partial = ""
	ml.mu.Unlock()
}
