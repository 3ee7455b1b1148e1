package textproc

import (
	"strings"
	"testing"
)

func TestSplitLongLines_ShortLineUnchanged(t *testing.T) {
	got := SplitLongLines("hello world", 100)
	if len(got) != 1 || got[0] != "hello world" {
		t.Errorf("got %q, want single unchanged chunk", got)
	}
}

func TestSplitLongLines_PunctuationBoundaries(t *testing.T) {
	got := SplitLongLines("Hello world, this is a test.", 10)

	for _, chunk := range got {
		if n := len([]rune(chunk)); n > 10 {
			t.Errorf("chunk %q has %d runes, budget is 10", chunk, n)
		}
	}
	last := got[len(got)-1]
	if !strings.HasSuffix(last, ".") {
		t.Errorf("last chunk %q should end with the period", last)
	}
}

func TestSplitLongLines_TerminatorBindsToSegment(t *testing.T) {
	got := SplitLongLines("یەکەم. دووەم. سێیەم و چوارەم و پێنجەم.", 15)

	for _, chunk := range got {
		if strings.HasPrefix(chunk, ".") || strings.HasPrefix(chunk, "،") {
			t.Errorf("chunk %q starts with a terminator; terminators must bind to the preceding segment", chunk)
		}
	}
}

func TestSplitLongLines_HardCutOversizedWord(t *testing.T) {
	got := SplitLongLines("Supercalifragilisticexpialidocious", 10)

	want := []string{"Supercalif", "ragilistic", "expialidoc", "ious"}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitLongLines_LengthBound(t *testing.T) {
	inputs := []string{
		"plain words separated by spaces repeated over and over again to exceed the budget",
		"ئەم دەقە کوردییە بۆ تاقیکردنەوەی دابەشکردنی دێڕە درێژەکان بەکاردێت، بە خاڵبەندی و بێ خاڵبەندی.",
		"one. two. three. four. five. six. seven. eight. nine. ten.",
		"nospacesatalljustonereallylongtokenthatkeepsgoingandgoing",
		"a b c d e f g h i j k l m n o p q r s t u v w x y z",
	}
	for _, maxLen := range []int{1, 5, 10, 40} {
		for _, input := range inputs {
			for _, chunk := range SplitLongLines(input, maxLen) {
				if n := len([]rune(chunk)); n > maxLen {
					t.Errorf("max %d: chunk %q has %d runes", maxLen, chunk, n)
				}
			}
		}
	}
}

func TestSplitLongLines_OrderPreserved(t *testing.T) {
	input := "The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs."
	got := SplitLongLines(input, 20)

	// Joining the chunks with single spaces and collapsing the
	// original's spacing must give back the same character sequence.
	joined := strings.Join(got, " ")
	if joined != input {
		t.Errorf("concatenation mismatch:\n got  %q\n want %q", joined, input)
	}
}

func TestSplitLongLines_NeverEmpty(t *testing.T) {
	for _, input := range []string{"x", "hello", "   spaced   ", "چ"} {
		got := SplitLongLines(input, 3)
		if len(got) == 0 {
			t.Errorf("input %q: got empty chunk sequence", input)
		}
	}
}

func TestStripControls(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rlm and lrm", "ab‏cd‎ef", "abcdef"},
		{"embedding and pop", "‫xyz‬", "xyz"},
		{"isolates", "⁧بەیان⁩", "بەیان"},
		{"arabic letter mark", "؜کورد", "کورد"},
		{"clean text untouched", "hello دنیا", "hello دنیا"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripControls(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitLongLines_ControlsStrippedBeforeCounting(t *testing.T) {
	// Five letters plus four direction marks: must count as five.
	input := "a‏b‏c‏d‏e"
	got := SplitLongLines(input, 5)
	if len(got) != 1 || got[0] != "abcde" {
		t.Errorf("got %q, want single chunk \"abcde\"", got)
	}
}

func TestIsRTL(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"hello", false},
		{"12345 !?", false},
		{"کوردی", true},
		{"mixed کوردی text", true},
		{"עברית", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRTL(tt.text); got != tt.want {
			t.Errorf("IsRTL(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
