package tex

import (
	"strings"
)

// escaper rewrites characters that are syntactically significant in LaTeX.
// Backslash goes first so it never re-escapes the escapes it produces.
//
//nolint:gochecknoglobals // Fixed escaping table
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`%`, `\%`,
	`&`, `\&`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
)

// Escape makes a plain text value safe for insertion into LaTeX markup.
func Escape(text string) (escaped string) {
	escaped = escaper.Replace(text)
	return escaped
}
