package version

import "strings"

// Version values are set at build time using -ldflags.
var Version = "dev"
var Built = ""
var GitCommit = ""

// Line renders the single line printed by --version.
func Line(program string) string {
	builder := strings.Builder{}
	builder.WriteString(program)
	if Version == "" || Version == "dev" {
		builder.WriteString(" dev")
	} else {
		builder.WriteString(" version ")
		builder.WriteString(Version)
	}
	if commit := strings.TrimSpace(GitCommit); commit != "" {
		builder.WriteString(" (")
		builder.WriteString(commit)
		if built := strings.TrimSpace(Built); built != "" {
			builder.WriteString(", built ")
			builder.WriteString(built)
		}
		builder.WriteString(")")
	}
	return builder.String()
}
