package stats

import (
	"html"
	"strings"
)

// questionWords are the interrogative openers the heuristic recognises.
var questionWords = []string{"who", "what", "when", "where", "why", "how"}

// CleanText strips markup from a message body and collapses runs of
// whitespace into single spaces. Message bodies arrive as HTML fragments;
// the counts only need the visible text.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			sb.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(html.UnescapeString(sb.String())), " ")
}

// IsQuestion classifies cleaned text as a question: it either ends with a
// question mark or opens with an interrogative word.
func IsQuestion(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	if strings.HasSuffix(lower, "?") {
		return true
	}
	for _, word := range questionWords {
		if strings.HasPrefix(lower, word+" ") {
			return true
		}
	}
	return false
}
