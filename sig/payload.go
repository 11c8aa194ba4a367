package sig

import (
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/compdata"
	"golang.org/x/exp/constraints"
)

// PayloadType describes the type of an opaque payload field. Payloads are
// never recursed into; generic operations compare and render them by means
// of the payload type.
type PayloadType struct {
	Name    string                   // Go type name, used by the code generator
	Compare utils.Comparator         // total order on payload values
	Show    func(interface{}) string // rendering of payload values
	Accepts func(interface{}) bool   // type check for payload values
}

func (pt *PayloadType) String() string {
	return pt.Name
}

// Equal is a shortcut for Compare(a, b) == 0.
func (pt *PayloadType) Equal(a, b interface{}) bool {
	return pt.Compare(a, b) == 0
}

// Pre-defined payload types.
var (
	Int      = Ordered[int]("int")
	Int64    = Ordered[int64]("int64")
	Uint64   = Ordered[uint64]("uint64")
	Float    = Ordered[float64]("float64")
	Rune     = Ordered[rune]("rune")
	String   = quoted(Ordered[string]("string"))
	Bool     = &PayloadType{Name: "bool", Compare: boolComparator, Show: showValue, Accepts: accepts[bool]}
	SpanType = &PayloadType{Name: "compdata.Span", Compare: spanComparator, Show: showValue, Accepts: accepts[compdata.Span]}
)

var builtinPayloads = map[string]*PayloadType{
	"int":           Int,
	"int64":         Int64,
	"uint64":        Uint64,
	"float64":       Float,
	"rune":          Rune,
	"int32":         Rune,
	"string":        String,
	"bool":          Bool,
	"compdata.Span": SpanType,
}

// PayloadByName returns a pre-defined payload type for a Go type name, if
// there is one.
func PayloadByName(gotype string) (*PayloadType, bool) {
	pt, ok := builtinPayloads[gotype]
	return pt, ok
}

// Ordered creates a payload type for any ordered Go type. Floating point
// NaNs are equal to each other and less than every other value.
//
//    Celsius := sig.Ordered[Temperature]("Temperature")
//
func Ordered[T constraints.Ordered](name string) *PayloadType {
	return &PayloadType{
		Name: name,
		Compare: func(a, b interface{}) int {
			x, y := a.(T), b.(T)
			xnan, ynan := isNaN(x), isNaN(y)
			switch {
			case xnan && ynan:
				return 0
			case xnan:
				return -1
			case ynan:
				return 1
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		},
		Show:    showValue,
		Accepts: accepts[T],
	}
}

// Opaque creates a payload type for values without a natural order. Values
// are ordered by their rendering, which has to be deterministic (i.e., must
// not depend on memory addresses).
func Opaque(name string) *PayloadType {
	return &PayloadType{
		Name: name,
		Compare: func(a, b interface{}) int {
			return utils.StringComparator(fmt.Sprintf("%#v", a), fmt.Sprintf("%#v", b))
		},
		Show:    showValue,
		Accepts: func(interface{}) bool { return true },
	}
}

func isNaN[T constraints.Ordered](x T) bool {
	return x != x
}

func quoted(pt *PayloadType) *PayloadType {
	pt.Show = func(v interface{}) string {
		return strconv.Quote(v.(string))
	}
	return pt
}

func accepts[T any](v interface{}) bool {
	_, ok := v.(T)
	return ok
}

func showValue(v interface{}) string {
	return fmt.Sprintf("%v", v)
}

func boolComparator(a, b interface{}) int {
	x, y := a.(bool), b.(bool)
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	}
	return 1
}

func spanComparator(a, b interface{}) int {
	return a.(compdata.Span).Compare(b.(compdata.Span))
}
