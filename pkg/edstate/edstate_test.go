package edstate

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-edstate/internal/ast"
)

func TestRoundTripPreservesStructureAndSelection(t *testing.T) {
	cases := []string{
		"P: foo|",
		`P: [@link href="https://example.com":foo]|`,
		"UL:\n  LI: foo\n  LI: bar|",
		"CODE!:\n  const arr = [1, 2, 3]|",
		`{IMG src="a.png"}|`,
		"SEC:{P: foo;;P: bar}",
	}
	for _, src := range cases {
		doc, err := Parse(src)
		require.NoError(t, err, "parsing %q", src)
		out := Serialize(doc, SerializeOptions{})
		doc2, err := Parse(out)
		require.NoError(t, err, "reparsing serialized form of %q (got %q)", src, out)
		if !ast.Equal(doc, doc2) {
			t.Fatalf("round-trip mismatch for %q (serialized as %q):\n%s", src, out, cmp.Diff(doc, doc2))
		}
	}
}

func TestParseReturnsTypedParseError(t *testing.T) {
	_, err := Parse("")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorCode(EmptyDocument), perr.Code)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("P: foo"))
	assert.Error(t, Validate("UL:\n"))
}

func TestMustParsePanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() {
		MustParse("")
	})
}

func TestGetRangeAndPointHelpers(t *testing.T) {
	doc := MustParse("P: hello world")
	sel, err := GetRange(doc, "world")
	require.NoError(t, err)
	require.NotNil(t, sel)

	before, err := GetPointBefore(doc, "world")
	require.NoError(t, err)
	after, err := GetPointAfter(doc, "world")
	require.NoError(t, err)
	assert.Equal(t, sel.Anchor, *before)
	assert.Equal(t, sel.Focus, *after)
}

func TestParseAllConcurrent(t *testing.T) {
	inputs := []string{"P: one", "P: two", "P: three"}
	docs, err := ParseAll(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, d := range docs {
		require.NotNil(t, d, "input %d", i)
	}
}

func TestParseAllPropagatesFirstError(t *testing.T) {
	inputs := []string{"P: ok", "UL:\n"}
	_, err := ParseAll(context.Background(), inputs)
	require.Error(t, err)
}

func TestSerializeAllConcurrent(t *testing.T) {
	docs := []*EditorState{
		MustParse("P: one"),
		MustParse("P: two"),
	}
	out, err := SerializeAll(context.Background(), docs, SerializeOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"P: one", "P: two"}, out)
}
