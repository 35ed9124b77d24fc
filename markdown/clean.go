// Package markdown reconstructs readable Markdown from raw OCR line
// dumps. Recognition output arrives as one physical line per detected
// text block, with broken spacing and duplicated punctuation; this
// package cleans it, regroups it into paragraphs, stitches multi-page
// series together and renders the final document.
package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// punctRun collapses a run of a repeated CJK punctuation mark, with
// optional whitespace between repeats, down to one. Runs of any length
// collapse in a single pass, so CleanText is idempotent.
var punctRuns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`，(?:\s*，)+`), "，"},
	{regexp.MustCompile(`。(?:\s*。)+`), "。"},
	{regexp.MustCompile(`！(?:\s*！)+`), "！"},
	{regexp.MustCompile(`？(?:\s*？)+`), "？"},
	{regexp.MustCompile(`；(?:\s*；)+`), "；"},
	{regexp.MustCompile(`：(?:\s*：)+`), "："},
}

var (
	// whitespaceRun matches spaces and tabs, but not newlines; line
	// structure is the paragraph grouper's input.
	whitespaceRun = regexp.MustCompile(`[ \t]+`)

	// spaceBeforePunct matches whitespace sitting in front of a CJK
	// punctuation mark.
	spaceBeforePunct = regexp.MustCompile(`\s+([，。！？；：])`)

	// spaceBetweenPunct matches whitespace wedged between two marks.
	spaceBetweenPunct = regexp.MustCompile(`([，。！？；：])\s+([，。！？；：])`)
)

// CleanText normalizes one page of raw OCR text: Unicode NFC, collapsed
// whitespace runs, deduplicated punctuation, and no stray spaces around
// CJK punctuation. Line breaks survive untouched. CleanText is
// idempotent: applying it to its own output changes nothing.
func CleanText(raw string) string {
	text := norm.NFC.String(raw)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = whitespaceRun.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	for _, run := range punctRuns {
		text = run.re.ReplaceAllString(text, run.replacement)
	}
	text = spaceBeforePunct.ReplaceAllString(text, "$1")

	// Matches share their left mark with the previous match, so a
	// single pass can leave a gap behind; repeat until settled.
	for {
		next := spaceBetweenPunct.ReplaceAllString(text, "$1$2")
		if next == text {
			break
		}
		text = next
	}

	return strings.TrimSpace(text)
}
