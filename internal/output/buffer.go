package output

import (
	"strings"
	"time"

	"github.com/ArtekArtek/fiddle/internal/model"
)

// Console noise filtered from the output log
const (
	// DebuggerListenPrefix starts the inspector announcement line
	DebuggerListenPrefix = "Debugger listening on ws://"

	// DebuggerHelpLine is the inspector help line
	DebuggerHelpLine = "For help see https://nodejs.org/en/docs/inspector"
)

// Line separator used by chunked console writes
const (
	CRLF = "\r\n"
)

// Buffer turns console writes into output log entries. With line buffering
// enabled, raw chunks accumulate until a full CRLF-terminated line arrives;
// the trailing partial line is retained across calls. Windows consoles
// deliver child output in arbitrary chunks, which is what the buffering
// compensates for.
//
// Buffer is not safe for concurrent use; callers serialize access.
type Buffer struct {
	lineBuffered bool
	pending      string
}

// New creates a Buffer. lineBuffered controls whether raw pushes accumulate
// partial lines.
func New(lineBuffered bool) *Buffer {
	return &Buffer{
		lineBuffered: lineBuffered,
	}
}

// Push processes a single console line, bypassing the line buffer. Debugger
// noise is dropped; accepted lines are trimmed and timestamped.
func (b *Buffer) Push(text string) (model.OutputEntry, bool) {
	if strings.HasPrefix(text, DebuggerListenPrefix) {
		return model.OutputEntry{}, false
	}
	if text == DebuggerHelpLine {
		return model.OutputEntry{}, false
	}

	entry := model.OutputEntry{
		Timestamp: time.Now(),
		Text:      strings.TrimSpace(text),
	}
	return entry, true
}

// PushRaw processes a chunk of child process output. With line buffering
// enabled it returns one entry per completed line and retains the trailing
// partial; otherwise the whole chunk passes through Push unchanged.
func (b *Buffer) PushRaw(data []byte) []model.OutputEntry {
	if !b.lineBuffered {
		if entry, ok := b.Push(string(data)); ok {
			return []model.OutputEntry{entry}
		}
		return nil
	}

	b.pending += string(data)
	parts := strings.Split(b.pending, CRLF)

	var entries []model.OutputEntry
	for i, part := range parts {
		// Last part is incomplete until a CRLF arrives
		if i == len(parts)-1 {
			b.pending = part
			continue
		}
		if entry, ok := b.Push(part); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Pending returns the retained partial line.
func (b *Buffer) Pending() string {
	return b.pending
}

// Reset discards the retained partial line.
func (b *Buffer) Reset() {
	b.pending = ""
}
