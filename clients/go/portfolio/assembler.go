package portfolio

import (
	"bytes"
	"encoding/json"
	"strings"
)

// State describes what the assembler is waiting for between reads.
type State int

const (
	// StateAwaitingLine means the assembler will try to extract the next
	// complete line from its buffer.
	StateAwaitingLine State = iota
	// StateAwaitingBytes means the buffered data ends with a line that did
	// not parse; the assembler waits for more bytes before retrying it.
	StateAwaitingBytes
)

const (
	ssePrefix  = "data: "
	doneMarker = "[DONE]"
)

// streamChunk mirrors the OpenAI-compatible streaming payload. Only the
// delta content is consumed.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Assembler incrementally parses an SSE chat stream from raw byte chunks,
// regardless of how the network sliced them. Chunk boundaries may fall
// inside a multi-byte character, inside a JSON payload, or between a line
// and its newline; the assembler buffers until a full line parses.
type Assembler struct {
	buf     bytes.Buffer
	state   State
	done    bool
	content strings.Builder
}

// NewAssembler creates an assembler ready to receive the first chunk.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Feed appends a raw chunk and returns the content deltas of every event
// completed by it, in stream order. Bytes after the [DONE] marker are
// ignored.
func (a *Assembler) Feed(p []byte) []string {
	if a.done {
		return nil
	}
	if len(p) > 0 {
		a.buf.Write(p)
		a.state = StateAwaitingLine
	}

	var deltas []string
	for a.state == StateAwaitingLine && !a.done {
		data := a.buf.Bytes()
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		line := string(data[:idx])
		a.buf.Next(idx + 1)

		delta, ok := a.consumeLine(line)
		if !ok {
			// The line did not parse; its JSON payload may continue in
			// the next chunk. Push the line back and wait for more bytes.
			rest := append([]byte(nil), a.buf.Bytes()...)
			a.buf.Reset()
			a.buf.WriteString(line)
			a.buf.WriteByte('\n')
			a.buf.Write(rest)
			a.state = StateAwaitingBytes
			return deltas
		}
		if delta != "" {
			deltas = append(deltas, delta)
		}
	}
	return deltas
}

// consumeLine interprets one complete line. ok is false only when the line
// carries a data payload that fails to parse, meaning it may be a split
// event; everything else is consumed.
func (a *Assembler) consumeLine(line string) (delta string, ok bool) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" || strings.HasPrefix(line, ":") {
		return "", true
	}
	payload, found := strings.CutPrefix(line, ssePrefix)
	if !found {
		// Not a data line (e.g. "event:" or "id:"); nothing to extract.
		return "", true
	}
	if payload == doneMarker {
		a.done = true
		return "", true
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return "", false
	}
	if len(chunk.Choices) == 0 {
		return "", true
	}
	delta = chunk.Choices[0].Delta.Content
	a.content.WriteString(delta)
	return delta, true
}

// Done reports whether the [DONE] marker has been seen.
func (a *Assembler) Done() bool {
	return a.done
}

// Content returns the full assistant text accumulated so far.
func (a *Assembler) Content() string {
	return a.content.String()
}

// State returns the assembler's current wait state.
func (a *Assembler) State() State {
	return a.state
}
