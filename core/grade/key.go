package grade

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/sims/core"
)

const (
	keySep    = '-'
	keyEscape = '\\'
)

// Key identifies a Grade.
type Key struct {
	StudentID string
	CourseID  string
}

// String encodes the key as `studentID-courseID`.
// `-` and `\` inside either ID are escaped with `\` so that ParseKey(k.String()) == k.
func (k Key) String() string {
	return escapeKeyPart(k.StudentID) + string(keySep) + escapeKeyPart(k.CourseID)
}

// ParseKey decodes the `studentID-courseID` text form of a Key.
// It fails with core.ErrMalformedKey unless the text holds exactly one unescaped `-` between two non-empty IDs.
func ParseKey(text string) (Key, error) {
	var (
		parts   []string
		part    strings.Builder
		escaped bool
	)
	for _, r := range text {
		switch {
		case escaped:
			part.WriteRune(r)
			escaped = false
		case r == keyEscape:
			escaped = true
		case r == keySep:
			parts = append(parts, part.String())
			part.Reset()
		default:
			part.WriteRune(r)
		}
	}
	parts = append(parts, part.String())

	if escaped || len(parts) != 2 {
		return Key{}, errors.Wrapf(core.ErrMalformedKey, "%q: format should be StudentID-CourseID", text)
	}
	key := Key{StudentID: core.CleanString(parts[0]), CourseID: core.CleanString(parts[1])}
	if key.StudentID == "" || key.CourseID == "" {
		return Key{}, errors.Wrapf(core.ErrMalformedKey, "%q: format should be StudentID-CourseID", text)
	}
	return key, nil
}

func escapeKeyPart(s string) string {
	if !strings.ContainsAny(s, string([]rune{keySep, keyEscape})) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == keySep || r == keyEscape {
			b.WriteRune(keyEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}
