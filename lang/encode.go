package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/goccy/go-yaml"
)

// ToMap converts n into a structure of maps, strings, and numbers suitable
// for generic encoders. Every node becomes a map with a "kind" key naming
// its variant. A nil node converts to nil.
func ToMap(n Node) map[string]any {
	switch n := n.(type) {
	case *IntegerLiteral:
		return map[string]any{
			"kind":  "IntegerLiteral",
			"raw":   n.Raw,
			"value": n.Value,
		}

	case *FloatLiteral:
		return map[string]any{
			"kind":  "FloatLiteral",
			"raw":   n.Raw,
			"value": n.Value,
		}

	case *Identifier:
		return map[string]any{
			"kind": "Identifier",
			"name": n.Name,
		}

	case *BinaryOp:
		return map[string]any{
			"kind":  "BinaryOp",
			"op":    n.Op.String(),
			"left":  ToMap(n.Left),
			"right": ToMap(n.Right),
		}

	case *UnaryOp:
		return map[string]any{
			"kind":    "UnaryOp",
			"op":      n.Op.String(),
			"operand": ToMap(n.Operand),
		}

	default:
		return nil
	}
}

// EncodeJSON writes the structural form of n as JSON followed by a newline.
// An indent of zero produces compact output.
func EncodeJSON(w io.Writer, n Node, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToMap(n), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToMap(n))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// EncodeYAML writes the structural form of n as YAML.
// An indent of zero produces flow-style output.
func EncodeYAML(ctx context.Context, w io.Writer, n Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToMap(n), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Dump writes n as an indented Go-syntax tree.
func Dump(w io.Writer, n Node) {
	repr.New(w, repr.Indent("  "), repr.OmitEmpty(false)).Println(n)
}
