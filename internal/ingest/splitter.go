package ingest

import "strings"

// defaultSeparators are tried in order: paragraph breaks first, then lines,
// sentences, words, and finally hard character cuts.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter splits text into chunks of at most chunkSize bytes with
// chunkOverlap bytes carried between consecutive chunks. It prefers to break
// at the coarsest separator present, recursing to finer ones only for pieces
// that are still too large.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewSplitter creates a Splitter. overlap must be smaller than size
// (config validation enforces this before we get here).
func NewSplitter(size, overlap int) *Splitter {
	return &Splitter{
		chunkSize:    size,
		chunkOverlap: overlap,
		separators:   defaultSeparators,
	}
}

// Split splits text into chunks. Whitespace-only chunks are dropped.
func (s *Splitter) Split(text string) []string {
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	if len(text) <= s.chunkSize {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	sep, rest := chooseSeparator(text, separators)
	if sep == "" {
		return s.cut(text)
	}

	parts := strings.Split(text, sep)

	var chunks []string
	var pending []string
	for _, part := range parts {
		if len(part) <= s.chunkSize {
			pending = append(pending, part)
			continue
		}
		// Oversized part: flush what we have, then recurse with finer
		// separators.
		chunks = append(chunks, s.merge(pending, sep)...)
		pending = nil
		chunks = append(chunks, s.split(part, rest)...)
	}
	chunks = append(chunks, s.merge(pending, sep)...)

	return chunks
}

// chooseSeparator picks the first separator that occurs in text and returns
// it with the finer separators remaining after it.
func chooseSeparator(text string, separators []string) (string, []string) {
	for i, sep := range separators {
		if sep == "" {
			return "", nil
		}
		if strings.Contains(text, sep) {
			return sep, separators[i+1:]
		}
	}
	return "", nil
}

// merge joins short parts back together into chunks of at most chunkSize,
// carrying up to chunkOverlap bytes of trailing parts into the next chunk.
func (s *Splitter) merge(parts []string, sep string) []string {
	var chunks []string
	var window []string
	windowLen := 0

	joinedLen := func(extra int) int {
		n := windowLen + extra
		if len(window) > 0 {
			n += len(sep) * len(window) // separators between and before extra
		}
		return n
	}

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(window, sep))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, part := range parts {
		if len(window) > 0 && joinedLen(len(part)) > s.chunkSize {
			flush()
			// Shrink the window to the overlap budget.
			for windowLen > s.chunkOverlap && len(window) > 0 {
				windowLen -= len(window[0])
				window = window[1:]
			}
		}
		window = append(window, part)
		windowLen += len(part)
	}
	flush()

	return chunks
}

// cut hard-splits text with no separator available.
func (s *Splitter) cut(text string) []string {
	step := s.chunkSize - s.chunkOverlap
	if step < 1 {
		step = s.chunkSize
	}

	var chunks []string
	for start := 0; start < len(text); start += step {
		end := start + s.chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(text) {
			break
		}
	}
	return chunks
}
