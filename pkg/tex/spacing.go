package tex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Spacing floors: a tightened value never passes these, so repeated
// applications converge instead of diverging.
const (
	minVspacePt = -24
	minVspaceMm = -10
)

// vspaceRegex matches \vspace{-Npt} and \vspace{-N mm} directives.
var vspaceRegex = regexp.MustCompile(`\\vspace\{\s*(-?\d+)\s*(pt|mm)\s*\}`)

// ReduceSpacing makes vertical spacing between sections tighter so the
// document fits on fewer pages. Each negative spacing value is doubled
// toward a clamped floor; zero and positive values are left alone so the
// transform can never invert a sign.
func ReduceSpacing(texSource string) (tightened string) {
	tightened = vspaceRegex.ReplaceAllStringFunc(texSource, tightenDirective)
	return tightened
}

// tightenDirective rewrites one \vspace directive with a tighter value.
func tightenDirective(directive string) (out string) {
	out = directive

	match := vspaceRegex.FindStringSubmatch(directive)
	if match == nil {
		return out
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return out
	}
	unit := strings.ToLower(strings.TrimSpace(match[2]))

	switch {
	case unit == "pt" && value >= -25 && value <= -1:
		out = fmt.Sprintf(`\vspace{%dpt}`, clampMin(value*2, minVspacePt))
	case unit == "mm" && value >= -25 && value <= -1:
		out = fmt.Sprintf(`\vspace{%dmm}`, clampMin(value*2, minVspaceMm))
	}

	return out
}

// clampMin bounds a negative spacing value at the floor.
func clampMin(value, floor int) (clamped int) {
	clamped = value
	if clamped < floor {
		clamped = floor
	}
	return clamped
}
