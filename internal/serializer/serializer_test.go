package serializer

import (
	"testing"

	"github.com/shapestone/shape-edstate/internal/ast"
)

func doc(blocks []ast.Block, sel *ast.Selection) *ast.EditorState {
	return &ast.EditorState{Blocks: blocks, Selection: sel}
}

func TestSerializeSimpleTextBlockWithCollapsedFocus(t *testing.T) {
	d := doc([]ast.Block{
		&ast.TextBlock{Name: "P", Children: []ast.InlineNode{&ast.Text{Value: "foo"}}},
	}, &ast.Selection{
		Anchor: ast.Point{Path: []int{0, 0}, Offset: 3},
		Focus:  ast.Point{Path: []int{0, 0}, Offset: 3},
	})
	got := Serialize(d, Options{})
	want := "P: foo|"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeMarkWithAttrs(t *testing.T) {
	d := doc([]ast.Block{
		&ast.TextBlock{Name: "P", Children: []ast.InlineNode{
			&ast.Mark{
				Name: "link", Mode: ast.Annotation,
				Attrs:    ast.Attributes{"href": "https://example.com"},
				Children: []ast.InlineNode{&ast.Text{Value: "foo"}},
			},
		}},
	}, nil)
	got := Serialize(d, Options{})
	want := `P: [@link href="https://example.com":foo]`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeEscapesSpecialRunes(t *testing.T) {
	d := doc([]ast.Block{
		&ast.TextBlock{Name: "P", Children: []ast.InlineNode{&ast.Text{Value: "a[b]c|d"}}},
	}, nil)
	got := Serialize(d, Options{})
	want := `P: a\[b\]c\|d`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeContainerMultiline(t *testing.T) {
	d := doc([]ast.Block{
		&ast.ContainerBlock{Name: "UL", Children: []ast.Block{
			&ast.TextBlock{Name: "LI", Children: []ast.InlineNode{&ast.Text{Value: "foo"}}},
			&ast.TextBlock{Name: "LI", Children: []ast.InlineNode{&ast.Text{Value: "bar"}}},
		}},
	}, nil)
	got := Serialize(d, Options{})
	want := "UL:\n  LI: foo\n  LI: bar"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeContainerSingleLine(t *testing.T) {
	d := doc([]ast.Block{
		&ast.ContainerBlock{Name: "SEC", Children: []ast.Block{
			&ast.TextBlock{Name: "P", Children: []ast.InlineNode{&ast.Text{Value: "foo"}}},
			&ast.TextBlock{Name: "P", Children: []ast.InlineNode{&ast.Text{Value: "bar"}}},
		}},
	}, nil)
	got := Serialize(d, Options{SingleLine: true})
	want := "SEC:{P: foo;;P: bar}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeRawBlockEscapesMarkersOnly(t *testing.T) {
	d := doc([]ast.Block{
		&ast.RawBlock{Name: "CODE", Lines: []string{"const x = arr[0]|1"}},
	}, nil)
	got := Serialize(d, Options{})
	want := "CODE!:\n  const x = arr[0]\\|1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeBlockObjectWithMarkers(t *testing.T) {
	d := doc([]ast.Block{
		&ast.BlockObject{Name: "IMG", Attrs: ast.Attributes{"src": "a.png"}},
	}, &ast.Selection{
		Anchor: ast.Point{Path: []int{0}, Offset: 0},
		Focus:  ast.Point{Path: []int{0}, Offset: 1},
	})
	got := Serialize(d, Options{})
	want := `^{IMG src="a.png"}|`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeAttributeValueKinds(t *testing.T) {
	d := doc([]ast.Block{
		&ast.BlockObject{Name: "IMG", Attrs: ast.Attributes{
			"w":    int64(3),
			"ok":   true,
			"none": nil,
			"meta": map[string]any{"a": float64(1)},
		}},
	}, nil)
	got := Serialize(d, Options{})
	want := `{IMG meta={"a":1} none=null ok=true w=3}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeMultipleBlocksSeparatedByNewline(t *testing.T) {
	d := doc([]ast.Block{
		&ast.TextBlock{Name: "P", Children: []ast.InlineNode{&ast.Text{Value: "foo"}}},
		&ast.TextBlock{Name: "P", Children: []ast.InlineNode{&ast.Text{Value: "bar"}}},
	}, nil)
	got := Serialize(d, Options{})
	want := "P: foo\nP: bar"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
