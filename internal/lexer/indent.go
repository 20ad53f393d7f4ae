package lexer

// indentTracker maintains the off-side indentation stack and decides what
// synthetic INDENT/DEDENT tokens a new line's leading width implies.
// Grounded on shapestone-shape-yaml's IndentationTokenizer: a stack of
// established widths seeded with [0], one INDENT per push, one or more
// DEDENTs per pop run queued for subsequent calls.
type indentTracker struct {
	stack []int
}

func newIndentTracker() *indentTracker {
	return &indentTracker{stack: []int{0}}
}

func (t *indentTracker) top() int {
	return t.stack[len(t.stack)-1]
}

// measure processes a new line's leading width (in spaces) and reports
// whether a synthetic token must be emitted before the line's first real
// token, which kind it is, how many additional DEDENTs the caller should
// queue for subsequent calls (always 0 except on a multi-level dedent),
// and any indentation error.
func (t *indentTracker) measure(width int, line, column int) (emit bool, kind Kind, extra int, err error) {
	top := t.top()
	switch {
	case width > top:
		if width != top+2 {
			return false, 0, 0, newError(IndentationSkipsLevel, line, column, "")
		}
		t.stack = append(t.stack, width)
		return true, INDENT, 0, nil
	case width < top:
		pops := 0
		for t.top() > width {
			t.stack = t.stack[:len(t.stack)-1]
			pops++
		}
		if t.top() != width {
			return false, 0, 0, newError(IndentationNotMultipleOfTwo, line, column, "dedent to invalid level")
		}
		return true, DEDENT, pops - 1, nil
	default:
		return false, 0, 0, nil
	}
}

// finish returns the number of DEDENTs needed to unwind to level 0 at EOF.
func (t *indentTracker) finish() int {
	n := len(t.stack) - 1
	if n > 0 {
		t.stack = t.stack[:1]
	}
	return n
}
