// Package ops defines the differentiable operations of the autodiff engine
// as pure rule tables.
//
// Each operation is identified by a Kind and described by a Rule, which
// provides:
//   - Forward: computes the result from the operand values
//   - BackwardLHS / BackwardRHS: the local gradient with respect to each
//     operand, already multiplied by the upstream (output) gradient
//
// Rules never touch the graph. Wiring rules into graph edges is done by
// autodiff.Apply.
//
// Supported operations:
//   - Add: lhs + rhs (rhs is a number or a value)
//   - Mul: element-wise lhs ⊙ rhs (rhs is a number or a value)
//   - MatMul: lhs @ rhs (matrix values only)
//   - Pow: lhs^c for a number c
//   - Div: lhs / c for a number c
//   - Exp, Sigmoid, Tanh, ReLU: unary element-wise functions
package ops

import (
	"strconv"

	"github.com/pkg/errors"
)

// Kind identifies an operation.
type Kind uint8

// Operation kinds.
const (
	Add Kind = iota
	Mul
	MatMul
	Pow
	Div
	Exp
	Sigmoid
	Tanh
	ReLU

	numKinds
)

var kindNames = [numKinds]string{
	Add:     "Add",
	Mul:     "Mul",
	MatMul:  "MatMul",
	Pow:     "Pow",
	Div:     "Div",
	Exp:     "Exp",
	Sigmoid: "Sigmoid",
	Tanh:    "Tanh",
	ReLU:    "ReLU",
}

// String returns the operation name.
func (k Kind) String() string {
	if k >= numKinds {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kinds returns every defined operation kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Rule describes one operation for values of type V.
type Rule[V any] struct {
	Kind Kind

	// Accepts lists the operand kinds legal as right-hand side.
	Accepts OperandMask

	// Forward computes the operation result. It has no side effects.
	Forward func(lhs V, rhs Operand[V]) (V, error)

	// BackwardLHS returns d(Forward)/d(lhs) multiplied by upstream.
	BackwardLHS func(lhs V, rhs Operand[V], upstream V) (V, error)

	// BackwardRHS returns d(Forward)/d(rhs) multiplied by upstream.
	// Only called when rhs is a value.
	BackwardRHS func(lhs V, rhs Operand[V], upstream V) (V, error)
}

// Check validates the right-hand operand kind against the rule.
//
// A missing operand for an operation that needs one, or any operand given
// to a unary operation, yields ErrValue. An operand of the wrong kind
// yields ErrType.
func (r *Rule[V]) Check(rhs OperandKind) error {
	if r.Accepts.Has(rhs) {
		return nil
	}
	switch {
	case rhs == None:
		return errors.Wrapf(ErrValue, "%s: right-hand operand is required", r.Kind)
	case r.Accepts == Unary:
		return errors.Wrapf(ErrValue, "%s: takes no right-hand operand, got a %s", r.Kind, rhs)
	default:
		return errors.Wrapf(ErrType, "%s: right-hand operand must be %s, got a %s", r.Kind, r.Accepts, rhs)
	}
}

// Table maps every Kind to its Rule for one value flavor.
type Table[V any] struct {
	name  string
	rules [numKinds]*Rule[V]
}

// newTable builds a table, indexing each rule by its Kind.
func newTable[V any](name string, rules ...*Rule[V]) *Table[V] {
	t := &Table[V]{name: name}
	for _, r := range rules {
		t.rules[r.Kind] = r
	}
	return t
}

// Name returns the value flavor the table is defined for.
func (t *Table[V]) Name() string {
	return t.name
}

// Lookup returns the rule for kind, or ErrType if the operation is not
// defined for this value flavor.
func (t *Table[V]) Lookup(kind Kind) (*Rule[V], error) {
	if kind >= numKinds || t.rules[kind] == nil {
		return nil, errors.Wrapf(ErrType, "operation %s is not defined for %s values", kind, t.name)
	}
	return t.rules[kind], nil
}
