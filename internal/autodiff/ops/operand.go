package ops

import "strings"

// OperandKind classifies the right-hand side of an operation.
type OperandKind uint8

// Operand kinds.
const (
	None   OperandKind = iota // no right-hand side
	Number                    // a plain float64 constant
	Value                     // the value of another graph node
)

// String returns a short human-readable name.
func (k OperandKind) String() string {
	switch k {
	case None:
		return "none"
	case Number:
		return "number"
	case Value:
		return "node"
	default:
		return "unknown"
	}
}

// OperandMask is a set of OperandKind.
type OperandMask uint8

// Common masks.
const (
	Unary        = OperandMask(1 << None)
	NumberOnly   = OperandMask(1 << Number)
	ValueOnly    = OperandMask(1 << Value)
	NumberOrNode = NumberOnly | ValueOnly
)

// Has reports whether k is in the mask.
func (m OperandMask) Has(k OperandKind) bool {
	return m&(1<<k) != 0
}

// String lists the kinds in the mask, e.g. "number or node".
func (m OperandMask) String() string {
	var names []string
	for _, k := range []OperandKind{None, Number, Value} {
		if m.Has(k) {
			names = append(names, k.String())
		}
	}
	return strings.Join(names, " or ")
}

// Operand is the right-hand side of an operation: absent, a number, or a value.
type Operand[V any] struct {
	kind   OperandKind
	number float64
	value  V
}

// NoOperand returns an absent operand.
func NoOperand[V any]() Operand[V] {
	return Operand[V]{kind: None}
}

// NumberOperand wraps a plain constant.
func NumberOperand[V any](c float64) Operand[V] {
	return Operand[V]{kind: Number, number: c}
}

// ValueOperand wraps a node value.
func ValueOperand[V any](v V) Operand[V] {
	return Operand[V]{kind: Value, value: v}
}

// Kind returns the operand kind.
func (o Operand[V]) Kind() OperandKind {
	return o.kind
}

// Number returns the constant. Only meaningful when Kind() == Number.
func (o Operand[V]) Number() float64 {
	return o.number
}

// Value returns the wrapped value. Only meaningful when Kind() == Value.
func (o Operand[V]) Value() V {
	return o.value
}
