package matcher

import (
	"testing"

	"github.com/shapestone/shape-edstate/internal/ast"
	"github.com/shapestone/shape-edstate/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.EditorState {
	t.Helper()
	doc, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return doc
}

func TestGetRangeTextSubstring(t *testing.T) {
	doc := mustParse(t, "P: hello world")
	sel, err := GetRange(doc, "world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel == nil {
		t.Fatal("expected a match")
	}
	wantAnchor := ast.Point{Path: []int{0, 0}, Offset: 6}
	wantFocus := ast.Point{Path: []int{0, 0}, Offset: 11}
	if !sel.Anchor.Equal(wantAnchor) || !sel.Focus.Equal(wantFocus) {
		t.Fatalf("got %+v, want anchor %+v focus %+v", sel, wantAnchor, wantFocus)
	}
}

func TestGetRangeNoMatch(t *testing.T) {
	doc := mustParse(t, "P: hello world")
	sel, err := GetRange(doc, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel != nil {
		t.Fatalf("expected no match, got %+v", sel)
	}
}

func TestGetRangeBlockObjectAttributeSuperset(t *testing.T) {
	doc := mustParse(t, `{IMG src="a.png" alt="cat"}`)
	sel, err := GetRange(doc, `{IMG src="a.png"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel == nil {
		t.Fatal("expected a match despite the pattern omitting 'alt'")
	}
	want := ast.Point{Path: []int{0}, Offset: 0}
	if !sel.Anchor.Equal(want) {
		t.Fatalf("got %+v, want %+v", sel.Anchor, want)
	}
}

func TestGetRangeBlockObjectMismatchedAttribute(t *testing.T) {
	doc := mustParse(t, `{IMG src="a.png"}`)
	sel, err := GetRange(doc, `{IMG src="b.png"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel != nil {
		t.Fatalf("expected no match for a differing attribute value, got %+v", sel)
	}
}

func TestGetRangeMarkPattern(t *testing.T) {
	doc := mustParse(t, `P: see [@link href="https://example.com":this page] for details`)
	sel, err := GetRange(doc, `[@link:this page]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel == nil {
		t.Fatal("expected a match")
	}
	wantAnchor := ast.Point{Path: []int{0, 0}, Offset: 4}
	wantFocus := ast.Point{Path: []int{0, 2}, Offset: 0}
	if !sel.Anchor.Equal(wantAnchor) || !sel.Focus.Equal(wantFocus) {
		t.Fatalf("got %+v, want anchor %+v focus %+v", sel, wantAnchor, wantFocus)
	}
}

func TestGetRangeMultiBlockSpan(t *testing.T) {
	doc := mustParse(t, "P: first paragraph\nP: middle one\nP: last bit here")
	sel, err := GetRange(doc, "paragraph\nP: middle one\nP: last")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel == nil {
		t.Fatal("expected a multi-block match")
	}
	wantAnchor := ast.Point{Path: []int{0, 0}, Offset: 6}
	wantFocus := ast.Point{Path: []int{2, 0}, Offset: 4}
	if !sel.Anchor.Equal(wantAnchor) || !sel.Focus.Equal(wantFocus) {
		t.Fatalf("got %+v, want anchor %+v focus %+v", sel, wantAnchor, wantFocus)
	}
}

func TestGetPointBeforeAndAfter(t *testing.T) {
	doc := mustParse(t, "P: hello world")
	before, err := GetPointBefore(doc, "world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := GetPointAfter(doc, "world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before == nil || after == nil {
		t.Fatal("expected both points")
	}
	if before.Offset != 6 || after.Offset != 11 {
		t.Fatalf("got before=%+v after=%+v", before, after)
	}
}
