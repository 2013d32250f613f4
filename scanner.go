package sapf

import (
	"strings"
	"unicode"
)

// TokenKind classifies a scanned span. The numeric values are the indices
// into the semantic-token legend the server advertises, in legend order.
type TokenKind uint32

const (
	// TokenFunction is a word present in the dictionary.
	TokenFunction TokenKind = iota
	// TokenOperator is one of + - * / =.
	TokenOperator
	// TokenNumber is a run of ASCII digits and dots starting with a digit.
	TokenNumber
)

// Token is a classified span within a single line. Start and Length are
// rune offsets; the same convention is used by WordAt and by the position
// arithmetic in the server.
type Token struct {
	Start  uint32
	Length uint32
	Kind   TokenKind
}

// ScanLine classifies one line of text into highlightable spans using a
// greedy single left-to-right pass:
//
//   - any of + - * / = is a one-character operator span
//   - an ASCII digit starts a number span running through digits and dots;
//     runs like 1.2.3 are a single span, this is not a literal validator
//   - a letter starts a word running through letters, digits and _; the word
//     is a function span only if it is a known keyword, and is consumed
//     either way
//   - everything else consumes one column and emits nothing
//
// Spans are returned in strictly increasing Start order and never overlap.
func ScanLine(line string, keywords map[string]string) []Token {
	var tokens []Token

	runes := []rune(line)

	for i := 0; i < len(runes); {
		c := runes[i]

		switch {
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '=':
			tokens = append(tokens, Token{
				Start:  uint32(i), //nolint:gosec // G115: column fits
				Length: 1,
				Kind:   TokenOperator,
			})
			i++

		case isASCIIDigit(c):
			start := i
			i++

			for i < len(runes) && (isASCIIDigit(runes[i]) || runes[i] == '.') {
				i++
			}

			tokens = append(tokens, Token{
				Start:  uint32(start),     //nolint:gosec // G115: column fits
				Length: uint32(i - start), //nolint:gosec // G115: length fits
				Kind:   TokenNumber,
			})

		case unicode.IsLetter(c):
			start := i
			i++

			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}

			word := string(runes[start:i])
			if _, ok := keywords[word]; ok {
				tokens = append(tokens, Token{
					Start:  uint32(start),     //nolint:gosec // G115: column fits
					Length: uint32(i - start), //nolint:gosec // G115: length fits
					Kind:   TokenFunction,
				})
			}

		default:
			i++
		}
	}

	return tokens
}

func isASCIIDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// WordAt returns the whitespace-delimited word covering column on the given
// line. The match is inclusive on both ends of the word's span, so a cursor
// sitting just past the last character still selects it. This tokenizer is
// deliberately coarser than ScanLine: it does not split on operators or
// dots, and it is used only for hover lookups.
func WordAt(text string, line, column int) (string, bool) {
	word, _, ok := WordSpanAt(text, line, column)

	return word, ok
}

// WordSpanAt is WordAt plus the starting column of the returned word.
func WordSpanAt(text string, line, column int) (string, int, bool) {
	if line < 0 || column < 0 {
		return "", 0, false
	}

	lines := strings.Split(text, "\n")
	if line >= len(lines) {
		return "", 0, false
	}

	pos := 0

	for _, word := range strings.Fields(lines[line]) {
		end := pos + len([]rune(word))

		if column >= pos && column <= end {
			return word, pos, true
		}

		pos = end + 1
	}

	return "", 0, false
}
