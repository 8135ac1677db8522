package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alecthomas/kong"
)

type resolverFlags struct {
	Level    string   `default:"info" name:"log-level"`
	Pretty   bool     `default:"true" name:"log-pretty" negatable:""`
	MaxDepth int      `default:"1000" name:"max-depth"`
	Ratio    float64  `default:"1"    name:"ratio"`
	Var      []string `               name:"var"`
}

func parseWithConfig(t *testing.T, content string, args ...string) resolverFlags {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var flags resolverFlags

	parser, err := kong.New(&flags,
		kong.Configuration(resolve(context.Background()), path),
	)
	if err != nil {
		t.Fatalf("kong.New() error: %v", err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}

	return flags
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		args    []string
		want    resolverFlags
	}{
		{
			name:    "empty",
			content: "",
			want:    resolverFlags{Level: "info", Pretty: true, MaxDepth: 1000, Ratio: 1},
		},
		{
			name:    "flat keys",
			content: "log-level: debug\nlog-pretty: false\nmax-depth: 64\nratio: 0.25\n",
			want:    resolverFlags{Level: "debug", MaxDepth: 64, Ratio: 0.25},
		},
		{
			name:    "nested keys",
			content: "log:\n  level: warn\n  pretty: false\n",
			want:    resolverFlags{Level: "warn", MaxDepth: 1000, Ratio: 1},
		},
		{
			name:    "underscore keys",
			content: "max_depth: 8\nlog_level: error\n",
			want:    resolverFlags{Level: "error", Pretty: true, MaxDepth: 8, Ratio: 1},
		},
		{
			name:    "vars",
			content: "vars:\n  y: 2.0\n  x: 12\n",
			want: resolverFlags{
				Level: "info", Pretty: true, MaxDepth: 1000, Ratio: 1,
				Var: []string{"x=12", "y=2.0"},
			},
		},
		{
			name:    "command line wins",
			content: "log-level: debug\nmax-depth: 64\n",
			args:    []string{"--max-depth=3"},
			want:    resolverFlags{Level: "debug", Pretty: true, MaxDepth: 3, Ratio: 1},
		},
		{
			name:    "invalid document ignored",
			content: "log-level: [unclosed\n",
			want:    resolverFlags{Level: "info", Pretty: true, MaxDepth: 1000, Ratio: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseWithConfig(t, tt.content, tt.args...)

			if got.Level != tt.want.Level || got.Pretty != tt.want.Pretty ||
				got.MaxDepth != tt.want.MaxDepth || got.Ratio != tt.want.Ratio {
				t.Errorf("flags = %+v, want %+v", got, tt.want)
			}

			if !slices.Equal(got.Var, tt.want.Var) {
				t.Errorf("var = %q, want %q", got.Var, tt.want.Var)
			}
		})
	}
}

func TestConfigFlatten(t *testing.T) {
	t.Parallel()

	cfg := config{}
	cfg.flatten("", map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": true},
			"d": uint64(7),
		},
		"list": []any{int64(-1), "two"},
		"vars": map[string]any{"n": int64(-3), "f": 1.5},
	})

	if cfg["a-b-c"] != true {
		t.Errorf("a-b-c = %v, want true", cfg["a-b-c"])
	}

	if cfg["a-d"] != "7" {
		t.Errorf("a-d = %#v, want %q", cfg["a-d"], "7")
	}

	if list, _ := cfg["list"].([]any); len(list) != 2 || list[0] != "-1" || list[1] != "two" {
		t.Errorf("list = %#v", cfg["list"])
	}

	if vars, _ := cfg["var"].([]any); len(vars) != 2 || vars[0] != "f=1.5" || vars[1] != "n=-3" {
		t.Errorf("var = %#v", cfg["var"])
	}

	if _, ok := cfg["vars"]; ok {
		t.Error("vars mapping should not be flattened")
	}
}
