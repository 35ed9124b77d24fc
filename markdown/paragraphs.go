package markdown

import (
	"regexp"
	"strings"
)

// leadInPatterns mark lines that open a new list item or section, even
// mid-accumulation: bracketed numbers, dotted numbers, Chinese
// ordinals, and bullet glyphs.
var leadInPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[（(]\d+[）)]\s*`),
	regexp.MustCompile(`^\s*\d+[.、]\s*`),
	regexp.MustCompile(`^\s*[一二三四五六七八九十]+[、.]\s*`),
	regexp.MustCompile(`^\s*[•·]\s*`),
	regexp.MustCompile(`^\s*[-*]\s*`),
}

func hasLeadIn(line string) bool {
	for _, re := range leadInPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// GroupParagraphs regroups cleaned OCR lines into logical paragraphs.
// A blank line always closes the current paragraph; a lead-in marker
// closes it too, then starts a new one. Continuation lines are joined
// with a single space. Empty paragraphs are dropped.
func GroupParagraphs(cleaned string) []string {
	var (
		paragraphs []string
		current    []string
	)
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if hasLeadIn(line) && len(current) > 0 {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}
