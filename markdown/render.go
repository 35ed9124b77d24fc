package markdown

import "strings"

// Attribution is the closing line of every generated document.
const Attribution = "*本文档由小红书图片转Markdown工具自动生成*"

// Render produces the final Markdown document for a page series, with
// a page marker between consecutive pages. Returns "" when no page has
// any content.
func Render(title, author string, pages []PageContent) string {
	return renderItems(title, author, ConnectPages(pages))
}

// RenderMerged is Render with cross-page paragraph merging: paragraphs
// cut by a page boundary are fused and the marker between them dropped.
func RenderMerged(title, author string, pages []PageContent) string {
	return renderItems(title, author, ConnectPagesMerged(pages))
}

func renderItems(title, author string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	if title != "" {
		b.WriteString("# " + title + "\n\n")
	}
	if author != "" {
		b.WriteString("**作者**: " + author + "\n\n")
	}
	b.WriteString("---\n\n")

	for _, item := range items {
		if IsPageMarker(item) {
			b.WriteString(item + "\n\n")
			continue
		}
		b.WriteString(WrapParagraph(item) + "\n\n")
	}

	b.WriteString("---\n\n")
	b.WriteString(Attribution + "\n")
	return b.String()
}
