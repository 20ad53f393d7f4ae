// Package serializer renders an *ast.EditorState back into editor-state
// notation, reinserting any selection at the exact tree position the
// parser recorded it. Grounded on shapestone-shape-yaml's encoder: a
// single recursive walk that mirrors the parser's own traversal order so
// that parse(serialize(d)) reproduces d.
package serializer

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/shapestone/shape-edstate/internal/ast"
)

// Options controls the serializer's chosen layout. It never changes the
// value represented, only how it is laid out.
type Options struct {
	// SingleLine renders containers with the "{child;;child}" form and
	// joins sibling blocks with ";;" instead of newlines. Raw blocks
	// always keep their own indented multiline form regardless.
	SingleLine bool
}

// Serialize renders doc in its canonical textual form.
func Serialize(doc *ast.EditorState, opts Options) string {
	s := &serializer{doc: doc, opts: opts}
	for i, blk := range doc.Blocks {
		if i > 0 {
			s.writeSeparator()
		}
		s.writeBlock(blk, []int{i}, 0)
	}
	return s.b.String()
}

type serializer struct {
	b    strings.Builder
	doc  *ast.EditorState
	opts Options
}

func childPath(base []int, index int) []int {
	out := make([]int, len(base)+1)
	copy(out, base)
	out[len(base)] = index
	return out
}

func (s *serializer) writeSeparator() {
	if s.opts.SingleLine {
		s.b.WriteString(";;")
	} else {
		s.b.WriteByte('\n')
	}
}

func indentPrefix(n int) string { return strings.Repeat("  ", n) }

// emitMarkers writes '^' and/or '|' if the selection addresses the point
// (path, offset). A collapsed selection only ever emits '|' (§4.3).
func (s *serializer) emitMarkers(path []int, offset int) {
	sel := s.doc.Selection
	if sel == nil {
		return
	}
	pt := ast.Point{Path: path, Offset: offset}
	if sel.Collapsed() {
		if sel.Focus.Equal(pt) {
			s.b.WriteByte('|')
		}
		return
	}
	if sel.Anchor.Equal(pt) {
		s.b.WriteByte('^')
	}
	if sel.Focus.Equal(pt) {
		s.b.WriteByte('|')
	}
}

func (s *serializer) writeBlock(blk ast.Block, path []int, indent int) {
	switch v := blk.(type) {
	case *ast.BlockObject:
		s.emitMarkers(path, 0)
		s.b.WriteByte('{')
		s.b.WriteString(v.Name)
		s.writeAttrs(v.Attrs)
		s.b.WriteByte('}')
		s.emitMarkers(path, 1)
	case *ast.TextBlock:
		s.b.WriteString(v.Name)
		s.writeAttrs(v.Attrs)
		s.b.WriteString(": ")
		s.writeInline(v.Children, path)
	case *ast.RawBlock:
		s.b.WriteString(v.Name)
		s.b.WriteByte('!')
		s.writeAttrs(v.Attrs)
		s.b.WriteString(":\n")
		prefix := indentPrefix(indent + 1)
		for i, line := range v.Lines {
			if i > 0 {
				s.b.WriteByte('\n')
			}
			s.b.WriteString(prefix)
			s.writeRawLine(line, childPath(path, i))
		}
	case *ast.ContainerBlock:
		s.b.WriteString(v.Name)
		s.writeAttrs(v.Attrs)
		if s.opts.SingleLine {
			s.b.WriteString(":{")
			for i, c := range v.Children {
				if i > 0 {
					s.b.WriteString(";;")
				}
				s.writeBlock(c, childPath(path, i), indent)
			}
			s.b.WriteByte('}')
		} else {
			s.b.WriteString(":\n")
			prefix := indentPrefix(indent + 1)
			for i, c := range v.Children {
				if i > 0 {
					s.b.WriteByte('\n')
				}
				s.b.WriteString(prefix)
				s.writeBlock(c, childPath(path, i), indent+1)
			}
		}
	}
}

func (s *serializer) writeAttrs(attrs ast.Attributes) {
	for _, k := range attrs.SortedKeys() {
		s.b.WriteByte(' ')
		s.b.WriteString(k)
		s.b.WriteByte('=')
		s.writeValue(attrs[k])
	}
}

func (s *serializer) writeValue(v any) {
	switch val := v.(type) {
	case nil:
		s.b.WriteString("null")
	case string:
		s.b.WriteString(encodeAttrString(val))
	case int64:
		s.b.WriteString(strconv.FormatInt(val, 10))
	case bool:
		if val {
			s.b.WriteString("true")
		} else {
			s.b.WriteString("false")
		}
	default:
		// float64, []any, map[string]any: all JSON-native shapes decoded
		// from a JSON attribute value. encoding/json already produces the
		// compact, no-space form the spec asks for.
		b, err := json.Marshal(val)
		if err != nil {
			s.b.WriteString("null")
			return
		}
		s.b.Write(b)
	}
}

func encodeAttrString(v string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range v {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (s *serializer) writeInline(children []ast.InlineNode, basePath []int) {
	for i, child := range children {
		path := childPath(basePath, i)
		switch v := child.(type) {
		case *ast.Text:
			s.writeText(v.Value, path)
		case *ast.Mark:
			s.emitMarkers(path, 0)
			s.writeMark(v, path)
		case *ast.InlineObject:
			s.emitMarkers(path, 0)
			s.b.WriteByte('{')
			s.b.WriteString(v.Name)
			s.writeAttrs(v.Attrs)
			s.b.WriteByte('}')
			s.emitMarkers(path, 1)
		}
	}
	s.emitMarkers(childPath(basePath, len(children)), 0)
}

func (s *serializer) writeMark(v *ast.Mark, path []int) {
	s.b.WriteByte('[')
	s.b.WriteString(v.Mode.String())
	s.b.WriteString(v.Name)
	s.writeAttrs(v.Attrs)
	s.b.WriteByte(':')
	s.writeInline(v.Children, path)
	s.b.WriteByte(']')
}

func runeUTF16Len(r rune) int {
	if rl := utf16.RuneLen(r); rl > 0 {
		return rl
	}
	return 1
}

// writeText emits value's escaped characters, checking for a selection
// marker before every character boundary from offset 0 through the end.
func (s *serializer) writeText(value string, path []int) {
	offset := 0
	s.emitMarkers(path, offset)
	for _, r := range value {
		writeEscapedRune(&s.b, r)
		offset += runeUTF16Len(r)
		s.emitMarkers(path, offset)
	}
}

func writeEscapedRune(b *strings.Builder, r rune) {
	switch r {
	case '\\', '[', ']', '{', '}', '|', '^', ';':
		b.WriteByte('\\')
		b.WriteRune(r)
	default:
		b.WriteRune(r)
	}
}

// writeRawLine emits a raw block line verbatim except for '|' and '^',
// which must be escaped so the line re-parses to the same literal text
// instead of being read as a selection marker.
func (s *serializer) writeRawLine(line string, path []int) {
	offset := 0
	s.emitMarkers(path, offset)
	for _, r := range line {
		if r == '|' || r == '^' {
			s.b.WriteByte('\\')
		}
		s.b.WriteRune(r)
		offset += runeUTF16Len(r)
		s.emitMarkers(path, offset)
	}
}
