// Package matcher implements the pattern-locator described in §4.4: it
// re-parses a small fragment through the same lexer/parser front end
// used for whole documents, then searches a parsed tree for the
// leftmost span the fragment describes. Grounded on the same
// recursive-descent discipline as internal/parser, applied to a search
// rather than a build.
package matcher

import (
	"strings"

	"github.com/shapestone/shape-edstate/internal/ast"
	"github.com/shapestone/shape-edstate/internal/parser"
)

func childPath(base []int, index int) []int {
	out := make([]int, len(base)+1)
	copy(out, base)
	out[len(base)] = index
	return out
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == '-'
}

// looksLikeBlockSyntax reports whether s opens with an uppercase-initial
// identifier, optional '!', then ':' — i.e. is already a full block.
func looksLikeBlockSyntax(s string) bool {
	if len(s) == 0 || !isUpper(s[0]) {
		return false
	}
	i := 1
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '!' {
		i++
	}
	return i < len(s) && s[i] == ':'
}

// looksLikeBlockObject reports whether s is a bare block object pattern:
// "{UPPERCASE..." with no ':' anywhere in the string.
func looksLikeBlockObject(s string) bool {
	if len(s) < 2 || s[0] != '{' || !isUpper(s[1]) {
		return false
	}
	return !strings.Contains(s, ":")
}

func parsePatternBlocks(patternStr string) ([]ast.Block, error) {
	toParse := patternStr
	if !looksLikeBlockSyntax(patternStr) && !looksLikeBlockObject(patternStr) {
		toParse = "P: " + patternStr
	}
	doc, err := parser.Parse(toParse)
	if err != nil {
		return nil, err
	}
	return doc.Blocks, nil
}

// GetRange returns the selection a pattern locates within doc, or nil if
// no occurrence exists.
func GetRange(doc *ast.EditorState, patternStr string) (*ast.Selection, error) {
	blocks, err := parsePatternBlocks(patternStr)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, nil
	}
	if len(blocks) == 1 {
		return matchSingleBlockPattern(doc, blocks[0])
	}
	return matchMultiBlockPattern(doc, blocks)
}

// GetPointBefore returns the anchor of the pattern's match, or nil.
func GetPointBefore(doc *ast.EditorState, patternStr string) (*ast.Point, error) {
	sel, err := GetRange(doc, patternStr)
	if err != nil || sel == nil {
		return nil, err
	}
	return &sel.Anchor, nil
}

// GetPointAfter returns the focus of the pattern's match, or nil.
func GetPointAfter(doc *ast.EditorState, patternStr string) (*ast.Point, error) {
	sel, err := GetRange(doc, patternStr)
	if err != nil || sel == nil {
		return nil, err
	}
	return &sel.Focus, nil
}

func matchSingleBlockPattern(doc *ast.EditorState, pat ast.Block) (*ast.Selection, error) {
	switch p := pat.(type) {
	case *ast.BlockObject:
		return matchBlockObjectPattern(doc, p), nil
	case *ast.TextBlock:
		return matchTextBlockPattern(doc, p), nil
	default:
		return nil, nil
	}
}

func matchBlockObjectPattern(doc *ast.EditorState, pat *ast.BlockObject) *ast.Selection {
	var result *ast.Selection
	walkBlocks(doc.Blocks, nil, func(b ast.Block, path []int) bool {
		bo, ok := b.(*ast.BlockObject)
		if !ok || bo.Name != pat.Name || !bo.Attrs.IsSupersetOf(pat.Attrs) {
			return false
		}
		result = &ast.Selection{
			Anchor: ast.Point{Path: path, Offset: 0},
			Focus:  ast.Point{Path: path, Offset: 1},
		}
		return true
	})
	return result
}

func walkBlocks(blocks []ast.Block, base []int, visit func(ast.Block, []int) bool) bool {
	for i, b := range blocks {
		path := childPath(base, i)
		if visit(b, path) {
			return true
		}
		if cb, ok := b.(*ast.ContainerBlock); ok {
			if walkBlocks(cb.Children, path, visit) {
				return true
			}
		}
	}
	return false
}

func matchTextBlockPattern(doc *ast.EditorState, pat *ast.TextBlock) *ast.Selection {
	for i, b := range doc.Blocks {
		tb, ok := b.(*ast.TextBlock)
		if !ok {
			continue
		}
		path := []int{i}
		if len(pat.Children) == 1 {
			if t, ok := pat.Children[0].(*ast.Text); ok {
				if sel, ok := searchTextSubstring(tb.Children, path, t.Value); ok {
					return sel
				}
				continue
			}
		}
		if len(pat.Children) == 0 {
			continue
		}
		switch first := pat.Children[0].(type) {
		case *ast.Mark:
			if sel, ok := searchMarkPattern(tb.Children, path, first); ok {
				return sel
			}
		case *ast.InlineObject:
			if sel, ok := searchInlineObjectPattern(tb.Children, path, first); ok {
				return sel
			}
		}
	}
	return nil
}

func indexUTF16(s, needle string) int {
	bi := strings.Index(s, needle)
	if bi < 0 {
		return -1
	}
	return ast.UTF16Len(s[:bi])
}

func searchTextSubstring(children []ast.InlineNode, basePath []int, needle string) (*ast.Selection, bool) {
	for i, child := range children {
		path := childPath(basePath, i)
		switch v := child.(type) {
		case *ast.Text:
			if off := indexUTF16(v.Value, needle); off >= 0 {
				m := ast.UTF16Len(needle)
				return &ast.Selection{
					Anchor: ast.Point{Path: path, Offset: off},
					Focus:  ast.Point{Path: path, Offset: off + m},
				}, true
			}
		case *ast.Mark:
			if sel, ok := searchTextSubstring(v.Children, path, needle); ok {
				return sel, true
			}
		}
	}
	return nil, false
}

func searchMarkPattern(children []ast.InlineNode, basePath []int, pat *ast.Mark) (*ast.Selection, bool) {
	patText := ast.ConcatText(pat.Children)
	for i, child := range children {
		m, ok := child.(*ast.Mark)
		if !ok || m.Name != pat.Name || m.Mode != pat.Mode || !m.Attrs.IsSupersetOf(pat.Attrs) {
			continue
		}
		if !strings.HasPrefix(ast.ConcatText(m.Children), patText) {
			continue
		}
		return &ast.Selection{
			Anchor: markSiblingAnchor(children, basePath, i),
			Focus:  markSiblingFocus(children, basePath, i),
		}, true
	}
	for i, child := range children {
		if m, ok := child.(*ast.Mark); ok {
			if sel, ok := searchMarkPattern(m.Children, childPath(basePath, i), pat); ok {
				return sel, true
			}
		}
	}
	return nil, false
}

func markSiblingAnchor(children []ast.InlineNode, basePath []int, i int) ast.Point {
	if i > 0 {
		if t, ok := children[i-1].(*ast.Text); ok {
			return ast.Point{Path: childPath(basePath, i-1), Offset: ast.UTF16Len(t.Value)}
		}
	}
	return ast.Point{Path: childPath(basePath, i), Offset: 0}
}

func markSiblingFocus(children []ast.InlineNode, basePath []int, i int) ast.Point {
	if i+1 < len(children) {
		return ast.Point{Path: childPath(basePath, i+1), Offset: 0}
	}
	return ast.Point{Path: childPath(basePath, len(children)), Offset: 0}
}

func searchInlineObjectPattern(children []ast.InlineNode, basePath []int, pat *ast.InlineObject) (*ast.Selection, bool) {
	for i, child := range children {
		if o, ok := child.(*ast.InlineObject); ok && o.Name == pat.Name && o.Attrs.IsSupersetOf(pat.Attrs) {
			path := childPath(basePath, i)
			return &ast.Selection{
				Anchor: ast.Point{Path: path, Offset: 0},
				Focus:  ast.Point{Path: path, Offset: 1},
			}, true
		}
	}
	for i, child := range children {
		if m, ok := child.(*ast.Mark); ok {
			if sel, ok := searchInlineObjectPattern(m.Children, childPath(basePath, i), pat); ok {
				return sel, true
			}
		}
	}
	return nil, false
}

func matchMultiBlockPattern(doc *ast.EditorState, pat []ast.Block) (*ast.Selection, error) {
	n := len(pat)
	patTexts := make([]string, n)
	for i, b := range pat {
		tb, ok := b.(*ast.TextBlock)
		if !ok {
			return nil, nil
		}
		patTexts[i] = ast.ConcatText(tb.Children)
	}
	for s := 0; s+n <= len(doc.Blocks); s++ {
		docTexts := make([]string, n)
		ok := true
		for i := 0; i < n; i++ {
			tb, isText := doc.Blocks[s+i].(*ast.TextBlock)
			if !isText {
				ok = false
				break
			}
			docTexts[i] = ast.ConcatText(tb.Children)
		}
		if !ok || !strings.HasSuffix(docTexts[0], patTexts[0]) || !strings.HasPrefix(docTexts[n-1], patTexts[n-1]) {
			continue
		}
		middleOK := true
		for i := 1; i <= n-2; i++ {
			if docTexts[i] != patTexts[i] {
				middleOK = false
				break
			}
		}
		if !middleOK {
			continue
		}
		anchorOffset := ast.UTF16Len(docTexts[0]) - ast.UTF16Len(patTexts[0])
		anchor := resolveTextOffset(doc.Blocks[s].(*ast.TextBlock).Children, []int{s}, anchorOffset)
		focusOffset := ast.UTF16Len(patTexts[n-1])
		focus := resolveTextOffset(doc.Blocks[s+n-1].(*ast.TextBlock).Children, []int{s + n - 1}, focusOffset)
		return &ast.Selection{Anchor: anchor, Focus: focus}, nil
	}
	return nil, nil
}

// resolveTextOffset translates a UTF-16 offset into a text block or
// mark's concatenated descendant text into a Point, by walking its
// inline children left to right and descending into marks.
func resolveTextOffset(children []ast.InlineNode, basePath []int, targetUTF16 int) ast.Point {
	acc := 0
	for i, child := range children {
		path := childPath(basePath, i)
		switch v := child.(type) {
		case *ast.Text:
			l := ast.UTF16Len(v.Value)
			if targetUTF16 <= acc+l {
				return ast.Point{Path: path, Offset: targetUTF16 - acc}
			}
			acc += l
		case *ast.Mark:
			l := ast.UTF16Len(ast.ConcatText(v.Children))
			if targetUTF16 <= acc+l {
				return resolveTextOffset(v.Children, path, targetUTF16-acc)
			}
			acc += l
		case *ast.InlineObject:
		}
	}
	return ast.Point{Path: childPath(basePath, len(children)), Offset: 0}
}
