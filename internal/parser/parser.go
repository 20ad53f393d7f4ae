// Package parser builds an *ast.EditorState from editor-state notation
// source, resolving any free-floating selection markers (^ and |) into
// tree coordinates in the same pass that builds the tree. Grounded on
// shapestone-shape-yaml/internal/parser/parser.go's shape: a
// hand-written recursive-descent parser with one function per grammar
// production, documented with the production it implements, driving a
// single token of lookahead.
package parser

import (
	"encoding/json"
	"strings"

	"github.com/shapestone/shape-edstate/internal/ast"
	"github.com/shapestone/shape-edstate/internal/lexer"
)

// Parser drives a Lexer with one token of lookahead, flipping the
// lexer's expectIdent/rawMode/expectAttrValue flags at the grammar
// positions that need them before fetching the next token, and threads
// the currently-open path through the tree so that a free-floating '^'
// or '|' can be resolved into a Point the moment it is seen.
type Parser struct {
	lex *lexer.Lexer
	tok lexer.Token

	anchor *ast.Point
	focus  *ast.Point
}

// Parse parses a complete document.
func Parse(input string) (*ast.EditorState, error) {
	p := &Parser{lex: lexer.New(input)}
	if err := p.advance(true, false); err != nil {
		return nil, err
	}
	return p.parseDocument()
}

func (p *Parser) advance(expectIdent, attrValue bool) error {
	p.lex.SetExpectIdent(expectIdent)
	p.lex.SetExpectAttrValue(attrValue)
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *Parser) advanceDefault() error   { return p.advance(false, false) }
func (p *Parser) advanceIdent() error     { return p.advance(true, false) }
func (p *Parser) advanceAttrValue() error { return p.advance(true, true) }

func (p *Parser) errorf(code lexer.ErrorCode, detail string) error {
	return lexer.NewError(code, p.tok.Line, p.tok.Column, detail)
}

// recordMarker resolves a sighted ANCHOR or FOCUS token into a Point,
// enforcing that each appears at most once (§7: MultipleAnchor,
// MultipleFocus).
func (p *Parser) recordMarker(focus bool, path []int, offset int) error {
	pt := ast.Point{Path: append([]int(nil), path...), Offset: offset}
	if focus {
		if p.focus != nil {
			return p.errorf(lexer.MultipleFocus, "")
		}
		p.focus = &pt
	} else {
		if p.anchor != nil {
			return p.errorf(lexer.MultipleAnchor, "")
		}
		p.anchor = &pt
	}
	return nil
}

// childPath returns a fresh path extending base with index.
func childPath(base []int, index int) []int {
	out := make([]int, len(base)+1)
	copy(out, base)
	out[len(base)] = index
	return out
}

// document := (blank* block)* blank*
func (p *Parser) parseDocument() (*ast.EditorState, error) {
	if err := p.skipBlanks(); err != nil {
		return nil, err
	}
	var blocks []ast.Block
	for p.tok.Kind != lexer.EOF {
		blk, err := p.parseBlock([]int{len(blocks)})
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, blk)
		if err := p.skipBlanks(); err != nil {
			return nil, err
		}
	}
	if len(blocks) == 0 {
		return nil, p.errorf(lexer.EmptyDocument, "")
	}
	sel := p.finalizeSelection()
	return &ast.EditorState{Blocks: blocks, Selection: sel}, nil
}

// blank := NEWLINE | BLOCK_SEP
func (p *Parser) skipBlanks() error {
	for p.tok.Kind == lexer.NEWLINE || p.tok.Kind == lexer.BLOCK_SEP {
		if err := p.advanceIdent(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) finalizeSelection() *ast.Selection {
	if p.anchor == nil && p.focus == nil {
		return nil
	}
	if p.anchor == nil {
		p.anchor = p.focus
	}
	if p.focus == nil {
		p.focus = p.anchor
	}
	return &ast.Selection{Anchor: *p.anchor, Focus: *p.focus}
}

// block := (ANCHOR|FOCUS)? blockObject
//        | IDENT BANG attrs COLON rawBlockBody
//        | IDENT attrs COLON (NEWLINE container | LBRACE inlineContainer | SPACE inlineContent)
func (p *Parser) parseBlock(path []int) (ast.Block, error) {
	if p.tok.Kind == lexer.ANCHOR || p.tok.Kind == lexer.FOCUS {
		focus := p.tok.Kind == lexer.FOCUS
		if err := p.recordMarker(focus, path, 0); err != nil {
			return nil, err
		}
		if err := p.advanceIdent(); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind == lexer.LBRACE {
		return p.parseBlockObject(path)
	}
	if p.tok.Kind != lexer.IDENT {
		return nil, p.errorf(lexer.InvalidIdentifier, "expected a block type name")
	}
	name := p.tok.Value
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	if p.tok.Kind == lexer.BANG {
		return p.parseRawBlock(path, name)
	}
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.COLON {
		return nil, p.errorf(lexer.MalformedAttribute, "expected ':' after block attributes")
	}
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	switch p.tok.Kind {
	case lexer.NEWLINE, lexer.EOF, lexer.DEDENT:
		return p.parseMultilineContainer(path, name, attrs)
	case lexer.LBRACE:
		return p.parseInlineContainer(path, name, attrs)
	case lexer.SPACE:
		if err := p.advanceDefault(); err != nil {
			return nil, err
		}
		return p.parseTextBlock(path, name, attrs)
	default:
		return nil, p.errorf(lexer.MissingSpaceAfterColon, "")
	}
}

// blockObject := '{' IDENT attrs '}' (ANCHOR|FOCUS)?
func (p *Parser) parseBlockObject(path []int) (ast.Block, error) {
	if err := p.advanceIdent(); err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.IDENT {
		return nil, p.errorf(lexer.InvalidIdentifier, "expected block object type")
	}
	name := p.tok.Value
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.RBRACE {
		return nil, p.errorf(lexer.UnbalancedBrace, "")
	}
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	if p.tok.Kind == lexer.ANCHOR || p.tok.Kind == lexer.FOCUS {
		focus := p.tok.Kind == lexer.FOCUS
		if err := p.recordMarker(focus, path, 1); err != nil {
			return nil, err
		}
		if err := p.advanceDefault(); err != nil {
			return nil, err
		}
	}
	return &ast.BlockObject{Name: name, Attrs: attrs}, nil
}

// attrs := (SPACE IDENT EQUALS value)*
func (p *Parser) parseAttrs() (ast.Attributes, error) {
	var attrs ast.Attributes
	for p.tok.Kind == lexer.SPACE {
		if err := p.advanceIdent(); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.IDENT {
			return nil, p.errorf(lexer.MalformedAttribute, "expected attribute name")
		}
		key := p.tok.Value
		if err := p.advanceDefault(); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.EQUALS {
			return nil, p.errorf(lexer.MalformedAttribute, "expected '='")
		}
		if err := p.advanceAttrValue(); err != nil {
			return nil, err
		}
		val, err := p.parseAttrValue()
		if err != nil {
			return nil, err
		}
		if attrs == nil {
			attrs = ast.Attributes{}
		}
		attrs[key] = val
		if err := p.advanceDefault(); err != nil {
			return nil, err
		}
	}
	return attrs, nil
}

func (p *Parser) parseAttrValue() (any, error) {
	switch p.tok.Kind {
	case lexer.STRING:
		return p.tok.Value, nil
	case lexer.NUMBER:
		n, err := lexer.ParseNumber(p.tok.Value)
		if err != nil {
			return nil, p.errorf(lexer.MalformedAttribute, "invalid number literal")
		}
		return n, nil
	case lexer.BOOLEAN:
		return p.tok.Value == "true", nil
	case lexer.IDENT:
		if p.tok.Value == "null" {
			return nil, nil
		}
		return p.tok.Value, nil
	case lexer.JSON:
		var v any
		if err := json.Unmarshal([]byte(p.tok.Value), &v); err != nil {
			return nil, p.errorf(lexer.InvalidJson, err.Error())
		}
		return v, nil
	default:
		return nil, p.errorf(lexer.MalformedAttribute, "expected an attribute value")
	}
}

// container := NEWLINE+ INDENT block+ DEDENT
func (p *Parser) parseMultilineContainer(path []int, name string, attrs ast.Attributes) (ast.Block, error) {
	for p.tok.Kind == lexer.NEWLINE {
		if err := p.advanceDefault(); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind != lexer.INDENT {
		return nil, p.errorf(lexer.EmptyContainer, "")
	}
	if err := p.advanceIdent(); err != nil {
		return nil, err
	}
	var children []ast.Block
	for {
		if err := p.skipBlanks(); err != nil {
			return nil, err
		}
		if p.tok.Kind == lexer.DEDENT || p.tok.Kind == lexer.EOF {
			break
		}
		child, err := p.parseBlock(childPath(path, len(children)))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if len(children) == 0 {
		return nil, p.errorf(lexer.EmptyContainer, "")
	}
	if p.tok.Kind == lexer.DEDENT {
		if err := p.advanceIdent(); err != nil {
			return nil, err
		}
	}
	return &ast.ContainerBlock{Name: name, Attrs: attrs, Children: children}, nil
}

// inlineContainer := '{' block (BLOCK_SEP block)* '}'
func (p *Parser) parseInlineContainer(path []int, name string, attrs ast.Attributes) (ast.Block, error) {
	if err := p.advanceIdent(); err != nil {
		return nil, err
	}
	var children []ast.Block
	for p.tok.Kind != lexer.RBRACE {
		child, err := p.parseBlock(childPath(path, len(children)))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		if p.tok.Kind == lexer.BLOCK_SEP {
			if err := p.advanceIdent(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.tok.Kind != lexer.RBRACE {
		return nil, p.errorf(lexer.UnbalancedBrace, "")
	}
	if len(children) == 0 {
		return nil, p.errorf(lexer.EmptyContainer, "")
	}
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	return &ast.ContainerBlock{Name: name, Attrs: attrs, Children: children}, nil
}

// rawBlockBody := BANG attrs COLON (NEWLINE+ INDENT rawLine* DEDENT)?
func (p *Parser) parseRawBlock(path []int, name string) (ast.Block, error) {
	if err := p.advanceDefault(); err != nil { // consume BANG
		return nil, err
	}
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.COLON {
		return nil, p.errorf(lexer.MalformedAttribute, "expected ':' after raw block attributes")
	}
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	for p.tok.Kind == lexer.NEWLINE {
		if err := p.advanceDefault(); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind != lexer.INDENT {
		return &ast.RawBlock{Name: name, Attrs: attrs}, nil
	}
	baseWidth := p.lex.IndentWidth()
	p.lex.SetRawMode(true)
	lines, markers := p.lex.ReadRawLines(baseWidth)
	p.lex.SetRawMode(false)
	for _, m := range markers {
		if err := p.recordMarker(m.Focus, childPath(path, m.Line), m.Offset); err != nil {
			return nil, err
		}
	}
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	if p.tok.Kind == lexer.DEDENT {
		if err := p.advanceIdent(); err != nil {
			return nil, err
		}
	}
	return &ast.RawBlock{Name: name, Attrs: attrs, Lines: lines}, nil
}

// textBlock's content: inlineContent
func (p *Parser) parseTextBlock(path []int, name string, attrs ast.Attributes) (ast.Block, error) {
	children, err := p.parseInlineContent(path)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind == lexer.NEWLINE {
		if err := p.advanceIdent(); err != nil {
			return nil, err
		}
		for p.tok.Kind == lexer.NEWLINE {
			if err := p.advanceIdent(); err != nil {
				return nil, err
			}
		}
		if p.tok.Kind == lexer.INDENT {
			return nil, p.errorf(lexer.InvalidChildUnderTextBlock, "")
		}
	}
	return &ast.TextBlock{Name: name, Attrs: attrs, Children: children}, nil
}

// inlineContent := (ANCHOR | FOCUS | mark | inlineObject | TEXT-like)*
// terminated by, but not consuming, NEWLINE | EOF | RBRACKET | RBRACE |
// DEDENT | BLOCK_SEP.
func (p *Parser) parseInlineContent(parentBasePath []int) ([]ast.InlineNode, error) {
	var children []ast.InlineNode
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			children = append(children, &ast.Text{Value: cur.String()})
			cur.Reset()
		}
	}
	for {
		switch p.tok.Kind {
		case lexer.NEWLINE, lexer.EOF, lexer.RBRACKET, lexer.RBRACE, lexer.DEDENT, lexer.BLOCK_SEP:
			flush()
			return children, nil
		case lexer.ANCHOR, lexer.FOCUS:
			focus := p.tok.Kind == lexer.FOCUS
			if err := p.recordMarker(focus, childPath(parentBasePath, len(children)), ast.UTF16Len(cur.String())); err != nil {
				return nil, err
			}
			if err := p.advanceDefault(); err != nil {
				return nil, err
			}
		case lexer.LBRACKET:
			flush()
			mark, err := p.parseMark(childPath(parentBasePath, len(children)))
			if err != nil {
				return nil, err
			}
			children = append(children, mark)
		case lexer.LBRACE:
			flush()
			obj, err := p.parseInlineObject(childPath(parentBasePath, len(children)))
			if err != nil {
				return nil, err
			}
			children = append(children, obj)
		default:
			cur.WriteString(p.tok.Value)
			if err := p.advanceDefault(); err != nil {
				return nil, err
			}
		}
	}
}

// mark := '[' (AT|TILDE)? IDENT attrs COLON inlineContent ']'
func (p *Parser) parseMark(markPath []int) (ast.InlineNode, error) {
	if err := p.advanceIdent(); err != nil { // consume '['
		return nil, err
	}
	mode := ast.Decorator
	if p.tok.Kind == lexer.AT || p.tok.Kind == lexer.TILDE {
		if p.tok.Kind == lexer.AT {
			mode = ast.Annotation
		} else {
			mode = ast.Overlay
		}
		if err := p.advanceIdent(); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind != lexer.IDENT {
		return nil, p.errorf(lexer.InvalidIdentifier, "expected mark type")
	}
	name := p.tok.Value
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.COLON {
		return nil, p.errorf(lexer.MissingColonInMark, "")
	}
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	children, err := p.parseInlineContent(markPath)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.RBRACKET {
		return nil, p.errorf(lexer.UnbalancedBracket, "")
	}
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	return &ast.Mark{Name: name, Mode: mode, Attrs: attrs, Children: children}, nil
}

// inlineObject := '{' IDENT attrs '}' (ANCHOR|FOCUS)?
func (p *Parser) parseInlineObject(objPath []int) (ast.InlineNode, error) {
	if err := p.advanceIdent(); err != nil { // consume '{'
		return nil, err
	}
	if p.tok.Kind != lexer.IDENT {
		return nil, p.errorf(lexer.InvalidIdentifier, "expected inline object type")
	}
	name := p.tok.Value
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.RBRACE {
		return nil, p.errorf(lexer.UnbalancedBrace, "")
	}
	if err := p.advanceDefault(); err != nil {
		return nil, err
	}
	if p.tok.Kind == lexer.ANCHOR || p.tok.Kind == lexer.FOCUS {
		focus := p.tok.Kind == lexer.FOCUS
		if err := p.recordMarker(focus, objPath, 1); err != nil {
			return nil, err
		}
		if err := p.advanceDefault(); err != nil {
			return nil, err
		}
	}
	return &ast.InlineObject{Name: name, Attrs: attrs}, nil
}
