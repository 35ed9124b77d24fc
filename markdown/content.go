package markdown

// PageContent carries one page of a series through the reconstruction
// stages.
type PageContent struct {
	// PageNumber is the 1-based position within the series.
	PageNumber int

	// RawText is the OCR output, untouched.
	RawText string

	// CleanedText is RawText after CleanText.
	CleanedText string

	// Paragraphs is the page regrouped into logical paragraphs.
	Paragraphs []string
}

// ProcessPage runs the cleaning and grouping stages over one page of
// raw OCR text.
func ProcessPage(pageNumber int, raw string) PageContent {
	cleaned := CleanText(raw)
	return PageContent{
		PageNumber:  pageNumber,
		RawText:     raw,
		CleanedText: cleaned,
		Paragraphs:  GroupParagraphs(cleaned),
	}
}

// Empty reports whether the page produced no usable paragraphs.
func (p PageContent) Empty() bool { return len(p.Paragraphs) == 0 }
