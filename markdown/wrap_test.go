package markdown

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"一句。两句！三句？", []string{"一句。", "两句！", "三句？"}},
		{"分号也算；后面", []string{"分号也算；", "后面"}},
		{"没有结束标点", []string{"没有结束标点"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := splitSentences(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitSentences(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestWrapParagraphShortPassthrough(t *testing.T) {
	in := "不到八十个字符的段落原样返回。"
	if got := WrapParagraph(in); got != in {
		t.Errorf("got %q", got)
	}
}

func TestWrapParagraphPacksSentences(t *testing.T) {
	long := strings.Repeat("这是一个三十个字符左右的句子用来测试换行逻辑对吧。", 5)
	wrapped := WrapParagraph(long)

	lines := strings.Split(wrapped, "\n")
	if len(lines) < 2 {
		t.Fatalf("long paragraph did not wrap: %q", wrapped)
	}
	for i, line := range lines {
		// Only a line holding a single over-budget sentence may
		// exceed the budget; these sentences are 25 runes each.
		if n := utf8.RuneCountInString(line); n > lineWidth {
			t.Errorf("line %d is %d runes: %q", i, n, line)
		}
	}
	if strings.ReplaceAll(wrapped, "\n", "") != long {
		t.Error("wrapping changed the text")
	}
}

func TestWrapParagraphOversizeSentence(t *testing.T) {
	// One 100-rune sentence cannot be wrapped; it stays whole.
	sentence := strings.Repeat("字", 99) + "。"
	wrapped := WrapParagraph(sentence + "短句。")
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), wrapped)
	}
	if lines[0] != sentence {
		t.Error("oversize sentence should occupy its own line unbroken")
	}
	if lines[1] != "短句。" {
		t.Errorf("second line = %q", lines[1])
	}
}
