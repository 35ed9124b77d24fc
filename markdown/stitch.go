package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// pageMarkerPrefix identifies marker items produced by PageMarker.
const pageMarkerPrefix = "--- 第 "

// PageMarker returns the separator line inserted between pages.
func PageMarker(page int) string {
	return fmt.Sprintf("--- 第 %d 页 ---", page)
}

// IsPageMarker reports whether item is a page separator.
func IsPageMarker(item string) bool {
	return strings.HasPrefix(item, pageMarkerPrefix)
}

// sentenceEnd matches paragraph endings that close a thought; a
// paragraph ending this way never merges into the next page.
var sentenceEnd = regexp.MustCompile(`([。！？]|\.|[：:]|[；;])\s*$`)

// ShouldConnect reports whether the last paragraph of one page reads as
// an unfinished sentence that the first paragraph of the next page
// continues. A trailing sentence-ending mark vetoes the merge, as does
// a lead-in marker opening the next paragraph.
func ShouldConnect(last, next string) bool {
	last = strings.TrimSpace(last)
	next = strings.TrimSpace(next)
	if last == "" || next == "" {
		return false
	}
	if sentenceEnd.MatchString(last) {
		return false
	}
	return !hasLeadIn(next)
}

// ConnectPages flattens a series into one item list, inserting a page
// marker before every page after the first. Pages without paragraphs
// are skipped entirely, marker included. Items are either paragraphs or
// markers; IsPageMarker tells them apart.
func ConnectPages(pages []PageContent) []string {
	var items []string
	for _, page := range pages {
		if page.Empty() {
			continue
		}
		if len(items) > 0 {
			items = append(items, PageMarker(page.PageNumber))
		}
		items = append(items, page.Paragraphs...)
	}
	return items
}

// ConnectPagesMerged behaves like ConnectPages but joins paragraphs
// split across a page boundary: when ShouldConnect holds for the
// boundary pair, they are fused with a space and the marker between
// them is dropped.
func ConnectPagesMerged(pages []PageContent) []string {
	var items []string
	for _, page := range pages {
		if page.Empty() {
			continue
		}
		rest := page.Paragraphs
		if len(items) > 0 {
			last := items[len(items)-1]
			if !IsPageMarker(last) && ShouldConnect(last, rest[0]) {
				items[len(items)-1] = last + " " + rest[0]
				rest = rest[1:]
				if len(rest) == 0 {
					continue
				}
			} else {
				items = append(items, PageMarker(page.PageNumber))
			}
		}
		items = append(items, rest...)
	}
	return items
}
