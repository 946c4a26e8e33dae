// Package format renders new syntax subtrees as Java source text.
//
// A Formatter returns the text of a node at a base indentation together
// with markers for the parts of the text that the rewriter must not insert
// literally: moved and copied nodes, string placeholders and tracked nodes.
package format

import (
	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/jast"
)

// MarkerKind identifies the payload behind a marker.
type MarkerKind uint8

const (
	// MarkerMove covers the stand-in text of a moved node.
	MarkerMove MarkerKind = iota + 1

	// MarkerCopy covers the stand-in text of a copied node.
	MarkerCopy

	// MarkerString covers the code of a string placeholder.
	MarkerString

	// MarkerTrack covers the text of a tracked new node. Its span may
	// contain other markers.
	MarkerTrack
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerMove:
		return "move"
	case MarkerCopy:
		return "copy"
	case MarkerString:
		return "string"
	case MarkerTrack:
		return "track"
	default:
		return "unknown"
	}
}

// Marker names a span of formatted text that stands for a node.
type Marker struct {
	Kind   MarkerKind
	Offset int
	Length int
	Node   jast.NodeID
}

// End returns the exclusive end offset within the formatted text.
func (m Marker) End() int { return m.Offset + m.Length }

// Formatter renders a node. Every line of the returned text, including the
// first, starts with baseIndent. Markers are ordered by offset; a track
// marker precedes the markers it contains.
type Formatter interface {
	Format(node jast.NodeID, baseIndent string) (string, []Marker)
}

// Options control the layout of rendered code.
type Options struct {
	Indent indent.Options

	// LineDelimiter separates rendered lines. Empty means "\n".
	LineDelimiter string

	// BlankLinesBetweenMembers is the number of blank lines rendered
	// between the members of a new type body.
	BlankLinesBetweenMembers int
}

// DefaultOptions returns tab indentation with LF delimiters and one blank
// line between members.
func DefaultOptions() Options {
	return Options{
		Indent:                   indent.DefaultOptions(),
		LineDelimiter:            "\n",
		BlankLinesBetweenMembers: 1,
	}
}

// Delimiter returns the configured line delimiter.
func (o Options) Delimiter() string {
	if o.LineDelimiter == "" {
		return "\n"
	}
	return o.LineDelimiter
}
