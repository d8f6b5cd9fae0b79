// Package steps turns free-text model completions into a clean,
// contiguously numbered list of steps.
package steps

import (
	"fmt"
	"strings"
)

const (
	// NoStepsMessage is returned when the raw text has no content at all.
	NoStepsMessage = "No steps could be generated."

	// ApologyMessage is returned when every line strips down to nothing.
	ApologyMessage = "Sorry, I couldn't generate steps for this task. Please try again."
)

// List is an ordered sequence of step texts without numbering or markup.
type List []string

// String renders the list as "Step <n>. <text>" lines numbered from 1.
func (l List) String() string {
	var b strings.Builder
	for i, text := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Step %d. %s", i+1, text)
	}
	return b.String()
}

// Normalize converts raw completion text into numbered steps. It never
// returns an empty string.
func Normalize(raw string) string {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return NoStepsMessage
	}

	list := parseLines(lines)
	if len(list) == 0 {
		return ApologyMessage
	}
	return list.String()
}

// Parse returns the step texts found in raw, in input order.
func Parse(raw string) List {
	return parseLines(splitLines(raw))
}

func parseLines(lines []string) List {
	kept := lines
	if stepLike := filterStepLike(lines); len(stepLike) > 0 {
		kept = stepLike
	}

	list := make(List, 0, len(kept))
	for _, line := range kept {
		if text := stepText(line); text != "" {
			list = append(list, text)
		}
	}
	return list
}

// splitLines splits on runs of newlines and drops blank lines.
func splitLines(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		lines = append(lines, f)
	}
	return lines
}

func filterStepLike(lines []string) []string {
	var out []string
	for _, line := range lines {
		if IsStepLike(line) {
			out = append(out, line)
		}
	}
	return out
}

// stepText strips markup and the structural prefix, then collapses
// whitespace.
func stepText(line string) string {
	text := stripPrefix(StripMarkup(line))
	return strings.Join(strings.Fields(text), " ")
}
