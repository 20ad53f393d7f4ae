package ast

// Equal reports whether two EditorStates are structurally identical,
// including their selections. This is the property §8's round-trip test
// checks: parse(serialize(d)) == d.
func Equal(a, b *EditorState) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Blocks) != len(b.Blocks) {
		return false
	}
	for i := range a.Blocks {
		if !BlockEqual(a.Blocks[i], b.Blocks[i]) {
			return false
		}
	}
	if (a.Selection == nil) != (b.Selection == nil) {
		return false
	}
	if a.Selection != nil && !a.Selection.Equal(*b.Selection) {
		return false
	}
	return true
}

// BlockEqual reports whether two blocks are structurally identical.
func BlockEqual(a, b Block) bool {
	switch av := a.(type) {
	case *TextBlock:
		bv, ok := b.(*TextBlock)
		if !ok || av.Name != bv.Name || !av.Attrs.Equal(bv.Attrs) {
			return false
		}
		return inlineSliceEqual(av.Children, bv.Children)
	case *ContainerBlock:
		bv, ok := b.(*ContainerBlock)
		if !ok || av.Name != bv.Name || !av.Attrs.Equal(bv.Attrs) {
			return false
		}
		if len(av.Children) != len(bv.Children) {
			return false
		}
		for i := range av.Children {
			if !BlockEqual(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	case *RawBlock:
		bv, ok := b.(*RawBlock)
		if !ok || av.Name != bv.Name || !av.Attrs.Equal(bv.Attrs) {
			return false
		}
		if len(av.Lines) != len(bv.Lines) {
			return false
		}
		for i := range av.Lines {
			if av.Lines[i] != bv.Lines[i] {
				return false
			}
		}
		return true
	case *BlockObject:
		bv, ok := b.(*BlockObject)
		return ok && av.Name == bv.Name && av.Attrs.Equal(bv.Attrs)
	default:
		return false
	}
}

// InlineEqual reports whether two inline nodes are structurally identical.
func InlineEqual(a, b InlineNode) bool {
	switch av := a.(type) {
	case *Text:
		bv, ok := b.(*Text)
		return ok && av.Value == bv.Value
	case *Mark:
		bv, ok := b.(*Mark)
		if !ok || av.Name != bv.Name || av.Mode != bv.Mode || !av.Attrs.Equal(bv.Attrs) {
			return false
		}
		return inlineSliceEqual(av.Children, bv.Children)
	case *InlineObject:
		bv, ok := b.(*InlineObject)
		return ok && av.Name == bv.Name && av.Attrs.Equal(bv.Attrs)
	default:
		return false
	}
}

func inlineSliceEqual(a, b []InlineNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !InlineEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ConcatText returns the concatenation of every Text descendant of nodes,
// descending into Mark children, in left-to-right order. Used by the
// matcher to compare a pattern's text content against a candidate span.
func ConcatText(nodes []InlineNode) string {
	var out []byte
	var walk func([]InlineNode)
	walk = func(ns []InlineNode) {
		for _, n := range ns {
			switch v := n.(type) {
			case *Text:
				out = append(out, v.Value...)
			case *Mark:
				walk(v.Children)
			case *InlineObject:
				// atomic, contributes no text
			}
		}
	}
	walk(nodes)
	return string(out)
}
