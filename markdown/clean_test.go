package markdown

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace runs",
			in:   "这是  一段\t\t文字",
			want: "这是 一段 文字",
		},
		{
			name: "keeps line breaks",
			in:   "第一行\n第二行",
			want: "第一行\n第二行",
		},
		{
			name: "deduplicates commas",
			in:   "一句话，，另一句",
			want: "一句话，另一句",
		},
		{
			name: "deduplicates spaced repeats",
			in:   "结束。 。 。开始",
			want: "结束。开始",
		},
		{
			name: "collapses long punctuation runs",
			in:   "啊！！！！真的吗？？？",
			want: "啊！真的吗？",
		},
		{
			name: "removes space before punctuation",
			in:   "结尾 。下一句 ，继续",
			want: "结尾。下一句，继续",
		},
		{
			name: "trims the result",
			in:   "  文字  \n",
			want: "文字",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"这是  一段\t文字，，有。。。问题！！！",
		"结尾 。 下一句 ， 继续",
		"第一行\n\n第二行  带空格",
		"。 ， 。",
	}
	for _, in := range inputs {
		once := CleanText(in)
		twice := CleanText(once)
		if once != twice {
			t.Errorf("CleanText not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestCleanTextNormalizesUnicode(t *testing.T) {
	// "é" as e + combining acute should come out precomposed.
	in := "café"
	want := "café"
	if got := CleanText(in); got != want {
		t.Errorf("CleanText(%q) = %q, want %q", in, got, want)
	}
}
