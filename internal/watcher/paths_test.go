package watcher

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"peat/internal/config"
)

func absPaths(t *testing.T, paths ...string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			t.Fatalf("abs %q: %v", path, err)
		}
		out = append(out, abs)
	}
	return NewWatchSet(out...).Sorted()
}

func TestParsePaths(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		separator config.Separator
		want      []string
	}{
		{name: "newlines dedupe", input: "a\na\nb\n", separator: config.SeparatorNewline, want: []string{"a", "b"}},
		{name: "whitespace", input: "  a\tb\n\nc  ", separator: config.SeparatorWhitespace, want: []string{"a", "b", "c"}},
		{name: "spaces keep newlines inside tokens", input: "a b\n c", separator: config.SeparatorSpace, want: []string{"a", "b", "c"}},
		{name: "spaces allow names with tabs", input: "a\tb c", separator: config.SeparatorSpace, want: []string{"a\tb", "c"}},
		{name: "newlines allow spaces", input: "my file\nother\n", separator: config.SeparatorNewline, want: []string{"my file", "other"}},
		{name: "nul", input: "a\x00b b\x00a\x00", separator: config.SeparatorNUL, want: []string{"a", "b b"}},
		{name: "nul strips trailing newline", input: "a\n\x00b\n", separator: config.SeparatorNUL, want: []string{"a", "b"}},
		{name: "only separators", input: "\n\n\n", separator: config.SeparatorNewline, want: nil},
		{name: "empty", input: "", separator: config.SeparatorWhitespace, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := ParsePaths([]byte(tc.input), tc.separator)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			want := absPaths(t, tc.want...)
			if got := set.Sorted(); !reflect.DeepEqual(got, want) {
				t.Fatalf("expected %q, got %q", want, got)
			}
		})
	}
}

func TestParsePathsKeepsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "x") + "\n" + filepath.Join(dir, "sub", "..", "x") + "\n"

	set, err := ParsePaths([]byte(input), config.SeparatorNewline)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Len() != 1 || !set.Contains(filepath.Join(dir, "x")) {
		t.Fatalf("expected cleaned absolute path, got %v", set.Sorted())
	}
}

func TestParsePathsRelativeToWorkingDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	set, err := ParsePaths([]byte("main.go"), config.SeparatorWhitespace)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !set.Contains(filepath.Join(cwd, "main.go")) {
		t.Fatalf("expected path under %s, got %v", cwd, set.Sorted())
	}
}
