package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/arith/lang"
	"github.com/ardnew/arith/log"
)

func TestSessionCommands(t *testing.T) {
	ctx := context.Background()
	s := newSession(nil, log.Logger{})

	steps := []struct {
		line    string
		want    string
		wantErr error
	}{
		{line: ":vars", want: "(no variables)"},
		{line: ":set x 12", want: "x = 12"},
		{line: "set y = x * 2", want: "y = 24"},
		{line: ":set z= 7 / 2", want: "z = 3.5"},
		{line: ":v", want: "x = 12\ny = 24\nz = 3.5"},
		{line: ":unset z"},
		{line: ":vars", want: "x = 12\ny = 24"},
		{line: ":unset z", wantErr: lang.ErrUndefinedVariable},
		{line: ":set a=5", want: "a = 5"},
		{line: ":set b =-a", want: "b = -5"},
		{line: ":unset a"},
		{line: ":unset b"},
		{line: ":set 1x 3", wantErr: ErrUsage},
		{line: ":set x", wantErr: ErrUsage},
		{line: ":set x=", wantErr: ErrUsage},
		{line: ":set =3", wantErr: ErrUsage},
		{line: ":set w q + 1", wantErr: lang.ErrUndefinedVariable},
		{line: ":set w 1 / 0", wantErr: lang.ErrDivisionByZero},
		{line: ":simplify 6/3 + x", want: "(2 + x)"},
		{line: ":s", wantErr: ErrUsage},
		{line: ":simplify 1 +", wantErr: lang.ErrParse},
		{line: ":tree", wantErr: ErrUsage},
		{line: ":bogus", wantErr: ErrUnknown},
		{line: ":clear", wantErr: errClear},
		{line: ":q", wantErr: errQuit},
		{line: ":"},
	}

	for _, step := range steps {
		got, err := s.exec(ctx, step.line)

		if step.wantErr != nil {
			if !errors.Is(err, step.wantErr) {
				t.Errorf("exec(%q) error = %v, want %v", step.line, err, step.wantErr)
			}

			continue
		}

		if err != nil {
			t.Errorf("exec(%q) unexpected error: %v", step.line, err)

			continue
		}

		if got != step.want {
			t.Errorf("exec(%q) = %q, want %q", step.line, got, step.want)
		}
	}
}

func TestSessionEval(t *testing.T) {
	ctx := context.Background()
	s := newSession(lang.Vars{"x": lang.Int(7), "y": lang.Int(2)}, log.Logger{})

	got, err := s.eval(ctx, "6 + (-4 + (3*x+7) * y * 9 / (4 + 3))")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got.String() != "74.0" {
		t.Errorf("eval = %s, want 74.0", got)
	}

	if _, err := s.eval(ctx, "x + nope"); !errors.Is(err, lang.ErrUndefinedVariable) {
		t.Errorf("eval error = %v, want %v", err, lang.ErrUndefinedVariable)
	}
}

func TestSessionCopiesVars(t *testing.T) {
	vars := lang.Vars{"x": lang.Int(1)}
	s := newSession(vars, log.Logger{})

	if _, err := s.exec(context.Background(), ":set x 2"); err != nil {
		t.Fatalf("set error: %v", err)
	}

	if v := vars["x"]; !v.Equal(lang.Int(1)) {
		t.Errorf("caller vars modified: x = %s", v)
	}
}

func TestSessionTree(t *testing.T) {
	s := newSession(nil, log.Logger{})

	got, err := s.exec(context.Background(), ":tree q + 1")
	if err != nil {
		t.Fatalf("tree error: %v", err)
	}

	for _, want := range []string{"lang.BinaryOp", `Name: "q"`} {
		if !strings.Contains(got, want) {
			t.Errorf("tree missing %q:\n%s", want, got)
		}
	}
}

func TestSessionHelp(t *testing.T) {
	s := newSession(nil, log.Logger{})

	got, err := s.exec(context.Background(), "help")
	if err != nil {
		t.Fatalf("help error: %v", err)
	}

	for _, name := range commandNames() {
		if !strings.Contains(got, name) {
			t.Errorf("help missing command %q", name)
		}
	}
}

func TestLookupCommand(t *testing.T) {
	for _, c := range commands {
		for _, name := range append([]string{c.name}, c.alias...) {
			got, ok := lookupCommand(name)
			if !ok || got.name != c.name {
				t.Errorf("lookupCommand(%q) = %q, %v; want %q", name, got.name, ok, c.name)
			}
		}
	}

	if _, ok := lookupCommand("nope"); ok {
		t.Error("lookupCommand(nope) should fail")
	}
}

func TestDescribe(t *testing.T) {
	_, err := lang.Parse("1 + )")
	if err == nil {
		t.Fatal("expected parse error")
	}

	got := describe("1 + )", err)
	if !strings.Contains(got, "1 | 1 + )") || !strings.HasSuffix(got, "^") {
		t.Errorf("describe() = %q, want source snippet with caret", got)
	}

	plain := errors.New("plain")
	if got := describe("x", plain); got != "plain" {
		t.Errorf("describe(plain) = %q, want %q", got, "plain")
	}
}
