package markdown

import (
	"strings"
	"unicode/utf8"
)

// lineWidth is the wrapping budget in runes. CJK text has no word
// boundaries to break on, so wrapping packs whole sentences instead.
const lineWidth = 80

// splitSentences cuts text after each CJK sentence-ending mark. The
// mark stays attached to its sentence. Text after the last mark forms a
// final fragment.
func splitSentences(text string) []string {
	var (
		sentences []string
		current   strings.Builder
	)
	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '。', '！', '？', '；':
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

// WrapParagraph reflows one paragraph to the wrapping budget. Sentences
// are packed greedily onto lines; a sentence that alone exceeds the
// budget stays on its own line rather than being broken mid-sentence.
func WrapParagraph(paragraph string) string {
	paragraph = strings.TrimSpace(paragraph)
	if utf8.RuneCountInString(paragraph) <= lineWidth {
		return paragraph
	}

	var (
		lines   []string
		current strings.Builder
		length  int
	)
	flush := func() {
		if length > 0 {
			lines = append(lines, current.String())
			current.Reset()
			length = 0
		}
	}

	for _, sentence := range splitSentences(paragraph) {
		n := utf8.RuneCountInString(sentence)
		if length > 0 && length+n > lineWidth {
			flush()
		}
		current.WriteString(sentence)
		length += n
	}
	flush()

	return strings.Join(lines, "\n")
}
