package lang

import (
	"log/slog"
	"slices"
	"strconv"
)

// Node is an expression tree node. The set of implementations is closed:
// [*IntegerLiteral], [*FloatLiteral], [*Identifier], [*BinaryOp], and
// [*UnaryOp].
//
// Trees built by this package are never modified after construction;
// callers that hold a tree must not modify it either.
type Node interface {
	String() string
	node()
}

// IntegerLiteral is an integer constant. Raw preserves the source
// spelling (e.g. "007") and Value is its numeric parse.
type IntegerLiteral struct {
	Raw   string
	Value int64
}

// FloatLiteral is a floating-point constant. Raw preserves the source
// spelling (e.g. "3.140") and Value is its numeric parse.
type FloatLiteral struct {
	Raw   string
	Value float64
}

// Identifier is a variable reference resolved at evaluation time.
type Identifier struct {
	Name string
}

// BinaryOp applies an arithmetic operator to two operands.
type BinaryOp struct {
	Left  Node
	Right Node
	Op    BinaryKind
}

// UnaryOp applies a prefix operator to one operand.
type UnaryOp struct {
	Operand Node
	Op      UnaryKind
}

func (*IntegerLiteral) node() {}
func (*FloatLiteral) node()   {}
func (*Identifier) node()     {}
func (*BinaryOp) node()       {}
func (*UnaryOp) node()        {}

func (n *IntegerLiteral) String() string { return String(n) }
func (n *FloatLiteral) String() string   { return String(n) }
func (n *Identifier) String() string     { return String(n) }
func (n *BinaryOp) String() string       { return String(n) }
func (n *UnaryOp) String() string        { return String(n) }

// BinaryKind identifies a binary operator.
type BinaryKind int

const (
	Add BinaryKind = iota
	Subtract
	Multiply
	Divide
)

// Symbol returns the operator's source symbol.
func (k BinaryKind) Symbol() string {
	switch k {
	case Add:
		return "+"

	case Subtract:
		return "-"

	case Multiply:
		return "*"

	case Divide:
		return "/"

	default:
		return "?"
	}
}

// String returns the operator name.
func (k BinaryKind) String() string {
	switch k {
	case Add:
		return "Add"

	case Subtract:
		return "Subtract"

	case Multiply:
		return "Multiply"

	case Divide:
		return "Divide"

	default:
		return "BinaryKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// apply computes l op r. Integer operands stay integers for + - *;
// division is always true division and yields a float.
func (k BinaryKind) apply(l, r Number) (Number, error) {
	both := l.IsInt() && r.IsInt()

	switch k {
	case Add:
		if both {
			return Int(l.i + r.i), nil
		}

		return Float(l.Float64() + r.Float64()), nil

	case Subtract:
		if both {
			return Int(l.i - r.i), nil
		}

		return Float(l.Float64() - r.Float64()), nil

	case Multiply:
		if both {
			return Int(l.i * r.i), nil
		}

		return Float(l.Float64() * r.Float64()), nil

	case Divide:
		if r.IsZero() {
			return Number{}, ErrDivisionByZero.
				With(slog.String("dividend", l.String()))
		}

		return Float(l.Float64() / r.Float64()), nil

	default:
		return Number{}, ErrInvalidNode.
			With(slog.String("operator", k.String()))
	}
}

// UnaryKind identifies a prefix operator.
type UnaryKind int

const (
	Negate UnaryKind = iota
)

// Symbol returns the operator's source symbol.
func (k UnaryKind) Symbol() string {
	if k == Negate {
		return "-"
	}

	return "?"
}

// String returns the operator name.
func (k UnaryKind) String() string {
	if k == Negate {
		return "Negate"
	}

	return "UnaryKind(" + strconv.Itoa(int(k)) + ")"
}

// apply computes op x, preserving the kind of x.
func (k UnaryKind) apply(x Number) (Number, error) {
	if k != Negate {
		return Number{}, ErrInvalidNode.
			With(slog.String("operator", k.String()))
	}

	if x.IsInt() {
		return Int(-x.i), nil
	}

	return Float(-x.f), nil
}

// NewInteger returns an integer literal whose Raw text is the canonical
// decimal form of v.
func NewInteger(v int64) *IntegerLiteral {
	return &IntegerLiteral{Raw: strconv.FormatInt(v, 10), Value: v}
}

// NewFloat returns a float literal whose Raw text is the canonical form of v.
func NewFloat(v float64) *FloatLiteral {
	return &FloatLiteral{Raw: formatFloat(v), Value: v}
}

// ParseInteger returns an integer literal preserving the spelling raw.
func ParseInteger(raw string) (*IntegerLiteral, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, ErrInvalidNumber.Wrap(err).
			With(slog.String("value", raw))
	}

	return &IntegerLiteral{Raw: raw, Value: v}, nil
}

// ParseFloat returns a float literal preserving the spelling raw.
func ParseFloat(raw string) (*FloatLiteral, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, ErrInvalidNumber.Wrap(err).
			With(slog.String("value", raw))
	}

	return &FloatLiteral{Raw: raw, Value: v}, nil
}

// NewIdentifier returns a variable reference.
func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

// NewBinary returns the binary node left op right.
func NewBinary(op BinaryKind, left, right Node) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right}
}

// NewUnary returns the unary node op operand.
func NewUnary(op UnaryKind, operand Node) *UnaryOp {
	return &UnaryOp{Op: op, Operand: operand}
}

// literalValue returns the value of n if it is a numeric literal.
func literalValue(n Node) (Number, bool) {
	switch n := n.(type) {
	case *IntegerLiteral:
		return Int(n.Value), true

	case *FloatLiteral:
		return Float(n.Value), true

	default:
		return Number{}, false
	}
}

// literalOf returns a freshly synthesized literal holding v.
func literalOf(v Number) Node {
	if v.IsInt() {
		return NewInteger(v.i)
	}

	return NewFloat(v.f)
}

// Clone returns a deep copy of n sharing no nodes with it.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *IntegerLiteral:
		c := *n

		return &c

	case *FloatLiteral:
		c := *n

		return &c

	case *Identifier:
		c := *n

		return &c

	case *BinaryOp:
		return NewBinary(n.Op, Clone(n.Left), Clone(n.Right))

	case *UnaryOp:
		return NewUnary(n.Op, Clone(n.Operand))

	default:
		return nil
	}
}

// Walk traverses n in pre-order, calling fn for each node. If fn returns
// false, the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch n := n.(type) {
	case *BinaryOp:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryOp:
		Walk(n.Operand, fn)
	}
}

// Identifiers returns the sorted distinct names referenced by n.
func Identifiers(n Node) []string {
	var names []string

	Walk(n, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}

		return true
	})

	slices.Sort(names)

	return slices.Compact(names)
}

// Unbound returns the sorted identifiers of n that env does not define.
func Unbound(n Node, env Env) []string {
	var missing []string

	for _, name := range Identifiers(n) {
		if env == nil {
			missing = append(missing, name)

			continue
		}

		if _, ok := env.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}

	return missing
}
