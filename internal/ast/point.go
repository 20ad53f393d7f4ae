package ast

import "slices"

// Point addresses a boundary in the tree: Path descends from the root by
// child index, and Offset is interpreted by whatever node the path
// resolves to (§3: character index for text, 0/1 for an atomic object;
// for a position between children, Path ends in the child index and
// Offset is 0).
type Point struct {
	Path   []int
	Offset int
}

// ClonePoint returns a Point whose Path is an independent copy of p.Path,
// following the discipline of never letting a stored selection snapshot
// alias a path slice that the parser or serializer is still mutating in
// place (kralicky-protocompile/ast/paths.go clones path slices for the
// same reason before extending them).
func ClonePoint(p Point) Point {
	return Point{Path: slices.Clone(p.Path), Offset: p.Offset}
}

// Equal reports whether p and q address the same path and offset.
func (p Point) Equal(q Point) bool {
	return p.Offset == q.Offset && slices.Equal(p.Path, q.Path)
}

// Selection is an anchor/focus pair. A collapsed selection has Anchor
// equal to Focus.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Collapsed reports whether the selection's anchor and focus coincide.
func (s Selection) Collapsed() bool {
	return s.Anchor.Equal(s.Focus)
}

// Equal reports whether two selections address the same anchor and focus.
func (s Selection) Equal(o Selection) bool {
	return s.Anchor.Equal(o.Anchor) && s.Focus.Equal(o.Focus)
}
