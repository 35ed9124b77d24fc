package markdown

import "strings"

// FormatStructure normalizes the layout of a rendered document: trimmed
// lines, no runs of blank lines, a blank line after every heading,
// horizontal rule and page marker, and long paragraph lines re-wrapped
// to the budget. Structural lines are never wrapped.
func FormatStructure(doc string) string {
	var out []string
	blank := true

	emit := func(line string) {
		if line == "" {
			if !blank {
				out = append(out, "")
				blank = true
			}
			return
		}
		out = append(out, line)
		blank = false
	}

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, " \t")

		switch {
		case line == "":
			emit("")
		case strings.HasPrefix(line, "#"), line == "---", IsPageMarker(line):
			// A rule glued to the previous paragraph would parse as a
			// setext heading; pad both sides.
			emit("")
			emit(line)
			emit("")
		default:
			for _, wrapped := range strings.Split(WrapParagraph(line), "\n") {
				emit(wrapped)
			}
		}
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
