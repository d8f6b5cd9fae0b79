package steps

import (
	"regexp"
	"strings"
)

var (
	stepPrefix   = regexp.MustCompile(`(?i)^step\s*\d+\b`)
	numberPrefix = regexp.MustCompile(`^\d+\s*[.)](?:[^\d]|$)`)
	bulletPrefix = regexp.MustCompile(`^[-•]`)

	stripStep   = regexp.MustCompile(`(?i)^step\s*\d+(?:\.\d+)*\s*[.):\-–]*\s*`)
	stripNumber = regexp.MustCompile(`^\d+\s*[.):]+\s*`)
	stripBullet = regexp.MustCompile(`^[-•]+\s*`)

	// Emphasis only counts when the markers hug the text, so "2 * 3 * 4"
	// keeps its stars.
	boldStars      = regexp.MustCompile(`\*\*(\S(?:[^*\n]*?\S)?)\*\*`)
	boldUnderscore = regexp.MustCompile(`__(\S(?:[^_\n]*?\S)?)__`)
	italicStars    = regexp.MustCompile(`\*(\S(?:[^*\n]*?\S)?)\*`)
	identifier     = regexp.MustCompile(`^\w+$`)
)

// HasStepPrefix reports whether line starts with "Step N" in any case.
func HasStepPrefix(line string) bool {
	return stepPrefix.MatchString(line)
}

// HasNumberPrefix reports whether line starts with an integer followed by
// "." or ")". Decimals such as "3.5 hours" do not count.
func HasNumberPrefix(line string) bool {
	return numberPrefix.MatchString(line)
}

// HasBulletPrefix reports whether line starts with "-" or "•".
func HasBulletPrefix(line string) bool {
	return bulletPrefix.MatchString(line)
}

// IsStepLike reports whether line carries any step marker. Emphasis markup
// around the marker is ignored, so "**Step 1.** Wash" is step-like.
func IsStepLike(line string) bool {
	line = StripMarkup(strings.TrimSpace(line))
	return HasStepPrefix(line) || HasNumberPrefix(line) || HasBulletPrefix(line)
}

// StripMarkup removes bold and emphasis markers from line. A bare
// identifier between double underscores, like __init__, is left alone.
func StripMarkup(line string) string {
	line = boldStars.ReplaceAllString(line, "$1")
	line = boldUnderscore.ReplaceAllStringFunc(line, func(m string) string {
		inner := m[2 : len(m)-2]
		if identifier.MatchString(inner) {
			return m
		}
		return inner
	})
	line = italicStars.ReplaceAllString(line, "$1")
	line = strings.TrimLeft(line, "* ")
	return strings.TrimSpace(line)
}

// stripPrefix removes one leading structural marker (Step N, numbering or
// bullet) from an already markup-free line.
func stripPrefix(line string) string {
	switch {
	case HasStepPrefix(line):
		return stripStep.ReplaceAllString(line, "")
	case HasNumberPrefix(line):
		return stripNumber.ReplaceAllString(line, "")
	case HasBulletPrefix(line):
		return stripBullet.ReplaceAllString(line, "")
	}
	return line
}
