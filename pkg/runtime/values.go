package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. The domain is closed:
// numbers (a single float64 representation covering integer and fractional
// literals) and booleans produced by comparison and logical operators.
type Value interface {
	Kind() Kind
}

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// Format renders a value in its canonical textual form: shortest decimal for
// numbers, `true`/`false` for booleans. This is the form emitted by print.
func Format(val Value) string {
	switch v := val.(type) {
	case NumberValue:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("[%s]", val.Kind())
	}
}

// Equal compares values across the full domain. Values of different kinds are
// simply unequal, never a type error.
func Equal(left, right Value) bool {
	switch l := left.(type) {
	case NumberValue:
		r, ok := right.(NumberValue)
		return ok && l.Val == r.Val
	case BoolValue:
		r, ok := right.(BoolValue)
		return ok && l.Val == r.Val
	default:
		return false
	}
}
