package preprocess

import "strings"

// CollapseNewlines condenses raw flattened output: leading newlines are
// dropped, any run of two or more newline characters collapses into one,
// and when trimTrailing is set a single trailing newline is removed.
// Interior whitespace other than newline runs is left untouched, and the
// operation is idempotent.
func CollapseNewlines(s string, trimTrailing bool) string {
	var b strings.Builder
	b.Grow(len(s))
	prevNL := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			if prevNL {
				continue
			}
			prevNL = true
		} else {
			prevNL = false
		}
		b.WriteByte(c)
	}
	out := b.String()
	if trimTrailing {
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}
