package refs

import (
	"strings"
	"unicode/utf8"

	"github.com/huangsam/specboard/schema"
)

// MarkReferences finds every occurrence of a candidate name that is closed
// by a double quote and opened by either a slash or a double quote, so
// "Pet" matches `"Pet"` and `schemas/Pet"` but not `"MyPet"`.
//
// The result is ordered by offset and never holds the same range twice.
// It depends only on its arguments, so calling it again after the viewer
// re-renders yields the same marks.
func MarkReferences(text string, pane schema.Pane, candidates []string) []schema.Annotation {
	if len(text) == 0 || len(candidates) == 0 {
		return []schema.Annotation{}
	}
	return scan(text, 0, len(text), 1, pane, candidateSet(candidates))
}

// MarkWindow is MarkReferences limited to lines fromLine through toLine
// (1-based, inclusive), for viewers that only render the visible slice.
// Offsets, lines and columns still refer to the full text.
func MarkWindow(text string, pane schema.Pane, candidates []string, fromLine, toLine int) []schema.Annotation {
	if len(text) == 0 || len(candidates) == 0 || toLine < fromLine || toLine < 1 {
		return []schema.Annotation{}
	}
	fromLine = max(fromLine, 1)

	start, line := 0, 1
	for line < fromLine {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			return []schema.Annotation{}
		}
		start += idx + 1
		line++
	}
	end := start
	for line <= toLine {
		idx := strings.IndexByte(text[end:], '\n')
		if idx < 0 {
			end = len(text)
			break
		}
		end += idx + 1
		line++
	}
	return scan(text, start, end, fromLine, pane, candidateSet(candidates))
}

func candidateSet(candidates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

// scan walks text[start:end] once. At each closing quote the token since
// the previous slash or quote is checked against the candidate set.
// start must be the beginning of a line numbered firstLine.
func scan(text string, start, end, firstLine int, pane schema.Pane, set map[string]struct{}) []schema.Annotation {
	out := []schema.Annotation{}
	line, lineStart := firstLine, start
	delim := -1

	for i := start; i < end; i++ {
		switch text[i] {
		case '\n':
			line++
			lineStart = i + 1
			delim = -1
		case '/':
			delim = i
		case '"':
			if delim >= 0 && i > delim+1 {
				token := text[delim+1 : i]
				if _, ok := set[token]; ok {
					out = append(out, schema.Annotation{
						Pane:      pane,
						Offset:    delim + 1,
						Length:    len(token),
						Line:      line,
						Column:    utf8.RuneCountInString(text[lineStart:delim+1]) + 1,
						Reference: token,
						Pointer:   PointerFor(token),
					})
				}
			}
			delim = i
		}
	}
	return out
}
