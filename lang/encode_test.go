package lang

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestToMap(t *testing.T) {
	t.Parallel()

	n, err := Parse("-(x + 1.5)")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	m := ToMap(n)

	if m["kind"] != "UnaryOp" || m["op"] != "Negate" {
		t.Fatalf("root = %v, want Negate UnaryOp", m)
	}

	bin, ok := m["operand"].(map[string]any)
	if !ok || bin["kind"] != "BinaryOp" || bin["op"] != "Add" {
		t.Fatalf("operand = %v, want Add BinaryOp", m["operand"])
	}

	left, ok := bin["left"].(map[string]any)
	if !ok || left["kind"] != "Identifier" || left["name"] != "x" {
		t.Errorf("left = %v, want Identifier x", bin["left"])
	}

	right, ok := bin["right"].(map[string]any)
	if !ok || right["kind"] != "FloatLiteral" || right["raw"] != "1.5" ||
		right["value"] != 1.5 {
		t.Errorf("right = %v, want FloatLiteral 1.5", bin["right"])
	}

	if ToMap(nil) != nil {
		t.Error("ToMap(nil) should be nil")
	}
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		indent int
		want   string
	}{
		{
			name:  "compact identifier",
			input: "x",
			want:  `{"kind":"Identifier","name":"x"}` + "\n",
		},
		{
			name:  "compact unary",
			input: "-007",
			want: `{"kind":"UnaryOp","op":"Negate","operand":` +
				`{"kind":"IntegerLiteral","raw":"007","value":7}}` + "\n",
		},
		{
			name:   "indented",
			input:  "y",
			indent: 2,
			want:   "{\n  \"kind\": \"Identifier\",\n  \"name\": \"y\"\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := EncodeJSON(&buf, n, tt.indent); err != nil {
				t.Fatalf("encode error: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("EncodeJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeYAML(t *testing.T) {
	t.Parallel()

	n, err := Parse("a / 2")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeYAML(t.Context(), &buf, n, 2); err != nil {
		t.Fatalf("encode error: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"kind: BinaryOp", "op: Divide", "name: a", "value: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEncodeYAML_Flow(t *testing.T) {
	t.Parallel()

	n, err := Parse("z")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeYAML(t.Context(), &buf, n, 0); err != nil {
		t.Fatalf("encode error: %v", err)
	}

	if out := buf.String(); !strings.HasPrefix(out, "{") {
		t.Errorf("expected flow mapping, got %q", out)
	}
}

func TestDump(t *testing.T) {
	t.Parallel()

	n, err := Parse("q + 1")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer

	Dump(&buf, n)

	out := buf.String()

	for _, want := range []string{"lang.BinaryOp", `Name: "q"`, `Raw: "1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRender(t *testing.T) {
	t.Parallel()

	n, err := Parse("(a - 1) * -b")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var sb strings.Builder
	if err := Render(&sb, n); err != nil {
		t.Fatalf("render error: %v", err)
	}

	if got, want := sb.String(), "((a - 1) * (-b))"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	if err := Render(failingWriter{}, n); err == nil {
		t.Error("expected write error")
	}

	if got := String(nil); got != "<nil>" {
		t.Errorf("String(nil) = %q, want <nil>", got)
	}
}

func TestNewLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		node Node
		want string
	}{
		{NewInteger(-12), "-12"},
		{NewFloat(2), "2.0"},
		{NewFloat(0.25), "0.25"},
		{NewFloat(1e21), "1000000000000000000000.0"},
		{NewBinary(Multiply, NewIdentifier("k"), NewFloat(0.5)), "(k * 0.5)"},
		{NewUnary(Negate, NewInteger(3)), "(-3)"},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
