package cli

import (
	"flag"
	"strings"
)

// ParseInterspersed parses args allowing flags before and after positional
// arguments. Everything after a bare "--" is positional. Clustered short
// flags such as "-Cq" and attached values such as "-i250" are accepted.
func ParseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	args = ExpandShortFlags(fs, args)
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		if len(remaining) == 0 {
			return positional, nil
		}
		consumed := len(args) - len(remaining)
		if consumed > 0 && args[consumed-1] == "--" {
			return append(positional, remaining...), nil
		}
		positional = append(positional, remaining[0])
		args = remaining[1:]
	}
}

// ExpandShortFlags splits single-dash clusters into one argument per flag.
// A value-taking flag consumes the rest of its cluster as the value. Anything
// that is already a defined flag, or contains an undefined letter, is left
// for fs.Parse to handle.
func ExpandShortFlags(fs *flag.FlagSet, args []string) []string {
	expanded := make([]string, 0, len(args))
	takesValue := false
	for i, arg := range args {
		if takesValue {
			expanded = append(expanded, arg)
			takesValue = false
			continue
		}
		if arg == "--" {
			return append(expanded, args[i:]...)
		}
		parts, pending := expandCluster(fs, arg)
		expanded = append(expanded, parts...)
		takesValue = pending
	}
	return expanded
}

// expandCluster reports whether the final flag still waits for its value in
// the next argument.
func expandCluster(fs *flag.FlagSet, arg string) ([]string, bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return []string{arg}, false
	}
	name, _, hasValue := strings.Cut(strings.TrimPrefix(arg[1:], "-"), "=")
	if defined := fs.Lookup(name); defined != nil {
		return []string{arg}, !hasValue && !isBoolFlag(defined)
	}
	if arg[1] == '-' {
		return []string{arg}, false
	}

	cluster := arg[1:]
	parts := make([]string, 0, len(cluster))
	for i, r := range cluster {
		letter := string(r)
		defined := fs.Lookup(letter)
		if defined == nil {
			return []string{arg}, false
		}
		parts = append(parts, "-"+letter)
		if isBoolFlag(defined) {
			continue
		}
		rest := cluster[i+len(letter):]
		if rest == "" {
			return parts, true
		}
		return append(parts, rest), false
	}
	return parts, false
}

func isBoolFlag(f *flag.Flag) bool {
	boolFlag, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && boolFlag.IsBoolFlag()
}
