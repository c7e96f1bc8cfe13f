// Package document locates tracker payloads inside plain-text
// documents and splices replacements back in. It works purely on
// text: decoding payloads is the caller's concern, and the fence
// markers themselves are never rewritten.
package document

import "strings"

// FenceTag is the fenced-block language tag that marks a tracker
// block inside a document.
const FenceTag = "tracknote"

// Section is the inclusive 0-based line range a block's payload
// occupies within its document. It is recomputed on every load and
// never persisted: the moment any other actor edits the document it
// is stale, and callers must re-locate before writing. An empty
// payload between adjacent fences is the span LineEnd == LineStart-1.
type Section struct {
	LineStart int
	LineEnd   int
}

// Block is one located fenced block: its payload span and the payload
// text, with multi-line payloads joined by newlines.
type Block struct {
	Section Section
	Payload string
}

// openFence returns the exact opening fence line for a tag.
func openFence(tag string) string {
	return "```" + tag
}

const closeFence = "```"

// trimLine strips trailing whitespace for fence comparison.
func trimLine(line string) string {
	return strings.TrimRight(line, " \t\r")
}

// Blocks scans text top-to-bottom for fenced blocks of the given tag
// and returns them in document order. A payload is normally exactly
// one line (the serialized tracker), but hand-edited multi-line
// payloads are captured whole. An unterminated block yields nothing.
func Blocks(text, tag string) []Block {
	lines := strings.Split(text, "\n")
	open := openFence(tag)

	var blocks []Block
	for i := 0; i < len(lines); i++ {
		if trimLine(lines[i]) != open {
			continue
		}
		payloadStart := i + 1
		closed := false
		for j := payloadStart; j < len(lines); j++ {
			if trimLine(lines[j]) != closeFence {
				continue
			}
			blocks = append(blocks, Block{
				Section: Section{LineStart: payloadStart, LineEnd: j - 1},
				Payload: strings.Join(lines[payloadStart:j], "\n"),
			})
			i = j
			closed = true
			break
		}
		if !closed {
			break
		}
	}
	return blocks
}

// Splice rebuilds the document with the payload span sec replaced by
// payload: lines before LineStart and after LineEnd are preserved
// byte-for-byte, everything between collapses to the new payload.
// Because the replacement is the canonical single-line form, any
// historical multi-line payload self-heals on its next write, and the
// document's total line count is free to shrink or grow.
func Splice(text string, sec Section, payload string) string {
	lines := strings.Split(text, "\n")

	var out []string
	out = append(out, lines[:sec.LineStart]...)
	out = append(out, payload)
	if sec.LineEnd+1 <= len(lines) {
		out = append(out, lines[sec.LineEnd+1:]...)
	}
	return strings.Join(out, "\n")
}

// AppendBlock appends a new fenced block with the given payload to the
// end of the document, separated from existing content by a blank
// line.
func AppendBlock(text, tag, payload string) string {
	block := openFence(tag) + "\n" + payload + "\n" + closeFence + "\n"
	if text == "" {
		return block
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + "\n" + block
}
