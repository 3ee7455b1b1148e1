// Package textproc prepares raw corpus lines for rendering.
//
// Lines longer than the configured budget are split into chunks at
// sentence punctuation first, then at word boundaries, so the rendered
// samples look like realistic lines of text rather than arbitrary
// slices. All length accounting is done in runes, not bytes, because
// the corpus is predominantly Arabic-script text.
package textproc

import (
	"strings"
	"unicode"
)

// terminators are the sentence/clause marks that bind to the preceding
// segment: Latin . ! ? plus the Arabic-script comma and semicolon.
const terminators = ".!?،؛"

func isTerminator(r rune) bool {
	return strings.ContainsRune(terminators, r)
}

func endsWithTerminator(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	return isTerminator(runes[len(runes)-1])
}

// StripControls removes invisible bidirectional control characters
// (direction marks, embeddings, overrides and isolates). They have no
// visual width, but if kept they corrupt rune counts and end up as
// unlabelable characters in the ground truth.
func StripControls(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '؜': // Arabic letter mark
			return -1
		case r == '‎' || r == '‏': // LRM, RLM
			return -1
		case r >= '‪' && r <= '‮': // embeddings and overrides
			return -1
		case r >= '⁦' && r <= '⁩': // isolates
			return -1
		}
		return r
	}, s)
}

// IsRTL reports whether text contains right-to-left script characters.
// Mixed-direction lines are treated as RTL because the corpus is
// Arabic-script with occasional embedded Latin tokens.
func IsRTL(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) || unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

// SplitLongLines splits text into chunks of at most maxLength runes.
//
// Splitting prefers sentence/clause boundaries, then whitespace word
// boundaries; a single word longer than the budget is hard-cut at the
// exact rune offset. The returned chunks preserve the original reading
// order and, for non-empty input, the result is never empty.
func SplitLongLines(text string, maxLength int) []string {
	text = StripControls(text)
	if len([]rune(text)) <= maxLength {
		return []string{text}
	}

	chunks := splitOnPunctuation(text, maxLength)

	// Any chunk that is still over budget gets re-split on word
	// boundaries, hard-cutting oversized single words.
	var final []string
	for _, chunk := range chunks {
		if len([]rune(chunk)) <= maxLength {
			final = append(final, chunk)
			continue
		}
		final = append(final, splitOnWords(chunk, maxLength)...)
	}

	if len(final) == 0 {
		return sliceWindows(text, maxLength)
	}
	return final
}

// splitOnPunctuation greedily accumulates terminator-delimited
// segments into chunks. A terminator binds tightly to the segment
// before it; plain segments are joined with a single space.
func splitOnPunctuation(text string, maxLength int) []string {
	parts := splitKeepTerminators(text)

	var chunks []string
	var current string

	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		if r := []rune(part); len(r) == 1 && isTerminator(r[0]) {
			current += part
			continue
		}
		if current != "" && len([]rune(current))+len([]rune(part))+1 > maxLength {
			chunks = append(chunks, strings.TrimSpace(current))
			current = part
			continue
		}
		if current != "" && !endsWithTerminator(current) {
			current += " " + part
		} else {
			current += part
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}
	return chunks
}

// splitKeepTerminators cuts text at every terminator followed by
// whitespace, emitting the preceding segment and the terminator as
// separate parts. The whitespace between them is dropped; chunk
// assembly reintroduces single spaces.
func splitKeepTerminators(text string) []string {
	var parts []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		parts = append(parts, string(runes[start:i]), string(runes[i]))
		i++
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start = i
		i--
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

// splitOnWords re-splits an oversized chunk on whitespace with the
// same accumulate/flush rule. A word that alone exceeds the budget is
// cut at the exact rune offset; the remainder starts the next
// accumulating line.
func splitOnWords(text string, maxLength int) []string {
	var chunks []string
	var current string

	for _, word := range strings.Fields(text) {
		if len([]rune(word)) > maxLength {
			if current != "" {
				chunks = append(chunks, current)
				current = ""
			}
			runes := []rune(word)
			for len(runes) > maxLength {
				chunks = append(chunks, string(runes[:maxLength]))
				runes = runes[maxLength:]
			}
			current = string(runes)
			continue
		}

		test := word
		if current != "" {
			test = current + " " + word
		}
		if len([]rune(test)) <= maxLength {
			current = test
		} else {
			chunks = append(chunks, current)
			current = word
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}
	if len(chunks) == 0 {
		return sliceWindows(text, maxLength)
	}
	return chunks
}

// sliceWindows hard-slices text into fixed maxLength-rune windows.
// Last-resort fallback so the pipeline never returns an empty result
// for non-empty input.
func sliceWindows(text string, maxLength int) []string {
	runes := []rune(text)
	var chunks []string
	for i := 0; i < len(runes); i += maxLength {
		end := i + maxLength
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
