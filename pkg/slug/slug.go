package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	separators = regexp.MustCompile(`[\s_\-.]+`)
	disallowed = regexp.MustCompile(`[^a-z0-9\-]+`)
	dashes     = regexp.MustCompile(`-{2,}`)
)

const maxLength = 48

// Make produces a lowercase ASCII slug for use in object keys and file names.
// Accents are stripped ("Café" -> "cafe"); characters with no ASCII form are dropped,
// so a name written only in CJK yields an empty string.
func Make(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}

	out := separators.ReplaceAllString(b.String(), "-")
	out = disallowed.ReplaceAllString(out, "")
	out = dashes.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")

	if len(out) > maxLength {
		out = strings.TrimRight(out[:maxLength], "-")
	}
	return out
}
