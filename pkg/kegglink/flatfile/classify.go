package flatfile

import "strings"

// Classify splits one physical line of a KEGG description block into its
// section keyword and payload. A non-indented line opens a new section named
// by its leading uppercase token; an indented line continues the previous
// section, so prev is carried forward. The second return value is the line
// with the keyword token (or leading indentation) stripped.
//
// Classify is a pure function of (line, prev); the carry-forward state lives
// entirely in the caller.
func Classify(line, prev string) (keyword, rest string) {
	if line == "" {
		return prev, ""
	}
	if line[0] == ' ' || line[0] == '\t' {
		return prev, strings.TrimSpace(line)
	}
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+1:])
}

// opensSection reports whether a line starts a new section rather than
// continuing the previous one.
func opensSection(line string) bool {
	return line != "" && line[0] != ' ' && line[0] != '\t'
}
