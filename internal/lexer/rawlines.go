package lexer

import (
	"strings"
	"unicode/utf16"
)

// RawMarker records a selection marker found while reading a raw block's
// body, by line index (0-based, relative to the block) and UTF-16 offset
// within that line's decoded text (§9: selection offsets are UTF-16 code
// unit counts).
type RawMarker struct {
	Line   int
	Offset int
	Focus  bool // true for '|', false for '^'
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if rl := utf16.RuneLen(r); rl > 0 {
			n += rl
		} else {
			n++
		}
	}
	return n
}

// ReadRawLines reads a raw block's body starting at the lexer's current
// position, which must be immediately after the INDENT token that opened
// it (so the first line's own leading whitespace has already been
// consumed by the ordinary indentation measurement). It reads lines
// verbatim, honoring only the raw-mode escapes for '|' and '^' (§9),
// until a line's indentation falls short of baseWidth or EOF is reached.
// Blank lines (whitespace only) are treated as empty lines belonging to
// the block rather than as dedents.
//
// On return, the lexer's position is at the start of the first line that
// is not part of the block (or at EOF), so a subsequent call to Next
// naturally produces the closing DEDENT from the ordinary indentation
// stack.
func (l *Lexer) ReadRawLines(baseWidth int) ([]string, []RawMarker) {
	var lines []string
	var markers []RawMarker
	first := true
	for {
		if l.eof() {
			break
		}
		lineStart, lineLine, lineCol := l.pos, l.line, l.col
		if !first {
			width := 0
			for width < baseWidth {
				b, ok := l.peekByte()
				if !ok || b != ' ' {
					break
				}
				l.advance()
				width++
			}
			if width < baseWidth {
				nb, ok := l.peekByte()
				if !ok || nb == '\n' {
					if ok {
						l.advance()
					}
					lines = append(lines, "")
					continue
				}
				l.pos, l.line, l.col = lineStart, lineLine, lineCol
				break
			}
		}
		first = false

		var sb strings.Builder
		for {
			b, ok := l.peekByte()
			if !ok || b == '\n' {
				break
			}
			switch b {
			case '|', '^':
				markers = append(markers, RawMarker{Line: len(lines), Offset: utf16Len(sb.String()), Focus: b == '|'})
				l.advance()
			case '\\':
				l.advance()
				nb, ok := l.peekByte()
				if ok && (nb == '|' || nb == '^') {
					sb.WriteByte(l.advance())
				} else {
					sb.WriteByte('\\')
				}
			default:
				sb.WriteByte(l.advance())
			}
		}
		lines = append(lines, sb.String())
		if nb, ok := l.peekByte(); ok && nb == '\n' {
			l.advance()
		}
	}
	l.atLineStart = true
	return lines, markers
}
