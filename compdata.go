package compdata

import "fmt"

// --- Child positions -------------------------------------------------------

// Child is a marker type for node-kind declarations in Go source. A field of
// type Child denotes a child position of a constructor, i.e. a recursive
// position holding a sub-term. Every other field type denotes an opaque
// payload.
//
//    //compdata:kind
//    type Arith struct {
//        Const struct{ N int }
//        Pair  struct{ A, B compdata.Child }
//    }
//
// See package derive and command cdtgen.
type Child struct{}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input positions. It is the
// canonical annotation payload for terms stemming from a parser: every node
// may be annotated with the span of input it covers. A span denotes a start
// position and the position just behind the end.
type Span [2]uint64 // (x…y)

// IsNull is a predicate: is s the empty span (0…0)?
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

// Compare orders spans by start position, then by end position.
func (s Span) Compare(other Span) int {
	switch {
	case s[0] < other[0]:
		return -1
	case s[0] > other[0]:
		return 1
	case s[1] < other[1]:
		return -1
	case s[1] > other[1]:
		return 1
	}
	return 0
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
