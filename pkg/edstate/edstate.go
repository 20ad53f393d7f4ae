// Package edstate is the public facade over editor-state notation:
// parsing, canonical serialization, and pattern-based range lookup.
// Grounded on shapestone-shape-yaml/pkg/yaml's role as a thin
// re-exporting layer in front of internal/parser and a shared tree
// package.
package edstate

import (
	"github.com/shapestone/shape-edstate/internal/ast"
	"github.com/shapestone/shape-edstate/internal/lexer"
	"github.com/shapestone/shape-edstate/internal/matcher"
	"github.com/shapestone/shape-edstate/internal/parser"
	"github.com/shapestone/shape-edstate/internal/serializer"
)

// Tree types, re-exported so callers never need to import internal/ast.
type (
	EditorState    = ast.EditorState
	Block          = ast.Block
	TextBlock      = ast.TextBlock
	ContainerBlock = ast.ContainerBlock
	RawBlock       = ast.RawBlock
	BlockObject    = ast.BlockObject
	InlineNode     = ast.InlineNode
	Text           = ast.Text
	Mark           = ast.Mark
	MarkMode       = ast.MarkMode
	InlineObject   = ast.InlineObject
	Attributes     = ast.Attributes
	Point          = ast.Point
	Selection      = ast.Selection
)

// Mark modes, re-exported.
const (
	Decorator  = ast.Decorator
	Annotation = ast.Annotation
	Overlay    = ast.Overlay
)

// ParseError and ErrorCode are re-exported from internal/lexer, which
// owns the stable error-code taxonomy (§7) shared by lexing and parsing
// failures.
type ParseError = lexer.Error
type ErrorCode = lexer.ErrorCode

// Error codes, re-exported for callers matching on err.(*ParseError).Code
// without importing internal/lexer.
const (
	TabsInIndentation           = lexer.TabsInIndentation
	IndentationNotMultipleOfTwo = lexer.IndentationNotMultipleOfTwo
	IndentationSkipsLevel       = lexer.IndentationSkipsLevel
	MultipleFocus               = lexer.MultipleFocus
	MultipleAnchor              = lexer.MultipleAnchor
	UnbalancedBracket           = lexer.UnbalancedBracket
	UnbalancedBrace             = lexer.UnbalancedBrace
	MissingColonInMark          = lexer.MissingColonInMark
	InvalidChildUnderTextBlock  = lexer.InvalidChildUnderTextBlock
	EmptyContainer              = lexer.EmptyContainer
	EmptyDocument               = lexer.EmptyDocument
	MissingSpaceAfterColon      = lexer.MissingSpaceAfterColon
	MalformedAttribute          = lexer.MalformedAttribute
	UnclosedQuote               = lexer.UnclosedQuote
	InvalidJson                 = lexer.InvalidJson
	InvalidIdentifier           = lexer.InvalidIdentifier
	InvalidEscapeSequence       = lexer.InvalidEscapeSequence
)

// Parse parses input into an EditorState, or returns a *ParseError.
func Parse(input string) (*EditorState, error) {
	return parser.Parse(input)
}

// MustParse parses input, panicking on failure. Intended for tests and
// static fixtures, not for user-supplied input.
func MustParse(input string) *EditorState {
	doc, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return doc
}

// SerializeOptions controls the serializer's layout choice.
type SerializeOptions = serializer.Options

// Serialize renders doc back into its canonical textual form.
func Serialize(doc *EditorState, opts SerializeOptions) string {
	return serializer.Serialize(doc, opts)
}

// Validate parses input and discards the result, reporting only whether
// it is well-formed.
func Validate(input string) error {
	_, err := Parse(input)
	return err
}

// GetRange locates pattern within doc, returning the selection it
// describes, or nil if no occurrence exists.
func GetRange(doc *EditorState, pattern string) (*Selection, error) {
	return matcher.GetRange(doc, pattern)
}

// GetPointBefore returns the anchor of pattern's match within doc.
func GetPointBefore(doc *EditorState, pattern string) (*Point, error) {
	return matcher.GetPointBefore(doc, pattern)
}

// GetPointAfter returns the focus of pattern's match within doc.
func GetPointAfter(doc *EditorState, pattern string) (*Point, error) {
	return matcher.GetPointAfter(doc, pattern)
}
