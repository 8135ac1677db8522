package lang

import (
	"io"
	"strings"
)

// String renders n in fully parenthesized form: binary nodes as
// "(<left> <op> <right>)", negation as "(-<operand>)", literals as their
// raw text, and identifiers as their name.
func String(n Node) string {
	var sb strings.Builder

	_ = Render(&sb, n) // strings.Builder never fails

	return sb.String()
}

// Render writes the fully parenthesized form of n to w.
func Render(w io.Writer, n Node) error {
	r := renderer{w: w}
	r.node(n)

	return r.err
}

// renderer writes node text and keeps the first write error.
type renderer struct {
	w   io.Writer
	err error
}

func (r *renderer) put(s string) {
	if r.err != nil {
		return
	}

	_, r.err = io.WriteString(r.w, s)
}

func (r *renderer) node(n Node) {
	switch n := n.(type) {
	case *IntegerLiteral:
		r.put(n.Raw)

	case *FloatLiteral:
		r.put(n.Raw)

	case *Identifier:
		r.put(n.Name)

	case *BinaryOp:
		r.put("(")
		r.node(n.Left)
		r.put(" " + n.Op.Symbol() + " ")
		r.node(n.Right)
		r.put(")")

	case *UnaryOp:
		r.put("(" + n.Op.Symbol())
		r.node(n.Operand)
		r.put(")")

	default:
		r.put("<nil>")
	}
}
