package rag

import "strings"

// separators in preference order: paragraph, line, word.
var separators = []string{"\n\n", "\n", " "}

// Splitter cuts text into chunks of roughly ChunkSize characters with
// ChunkOverlap characters carried over between consecutive chunks.
// Boundaries prefer paragraphs, then lines, then words; a chunk may
// exceed ChunkSize by at most ChunkOverlap when the overlap tail is
// prepended.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// Split returns the chunks of text. Whitespace-only input yields no
// chunks.
func (s Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	var cur strings.Builder
	for _, frag := range s.fragments(text, separators) {
		if cur.Len() > 0 && cur.Len()+len(frag) > s.ChunkSize {
			chunk := strings.TrimSpace(cur.String())
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			tail := overlapTail(cur.String(), s.ChunkOverlap)
			cur.Reset()
			cur.WriteString(tail)
		}
		cur.WriteString(frag)
	}
	if last := strings.TrimSpace(cur.String()); last != "" {
		chunks = append(chunks, last)
	}
	return chunks
}

// fragments recursively splits text into pieces no longer than
// ChunkSize, trying each separator in order; a piece with no usable
// separator is hard-cut on rune boundaries.
func (s Splitter) fragments(text string, seps []string) []string {
	if len(text) <= s.ChunkSize {
		return []string{text}
	}
	if len(seps) == 0 {
		return hardCut(text, s.ChunkSize)
	}

	var out []string
	parts := strings.SplitAfter(text, seps[0])
	if len(parts) == 1 {
		return s.fragments(text, seps[1:])
	}
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, s.fragments(part, seps[1:])...)
	}
	return out
}

func hardCut(text string, size int) []string {
	var out []string
	runes := []rune(text)
	for len(runes) > size {
		out = append(out, string(runes[:size]))
		runes = runes[size:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

// overlapTail returns the last n bytes of text, widened to a rune
// boundary.
func overlapTail(text string, n int) string {
	if len(text) <= n {
		return text
	}
	cut := len(text) - n
	for cut < len(text) && !isRuneStart(text[cut]) {
		cut++
	}
	return text[cut:]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
