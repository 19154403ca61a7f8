package validate

// subject.go implements the subject-ID heuristic. Subject IDs must be
// initials (1-4 bare letters, or dot-separated letters), never a full name
// or a placeholder like "unknown" — those are privacy violations the
// generic field rules cannot express.

import (
	"regexp"
	"strings"
)

var (
	bareInitialsRe   = regexp.MustCompile(`^[A-Za-z]{1,4}$`)
	dottedInitialsRe = regexp.MustCompile(`^[A-Za-z](\.[A-Za-z])*\.?$`)
)

// fullNamePartLen is the component length beyond which a multi-word value
// is treated as a real name. Genuine initials are short.
const fullNamePartLen = 3

// ClassifySubjectID inspects a subject-ID value and classifies it if it
// violates the initials convention. The checks run in fixed priority order
// and the first match wins; an acceptable value (or an empty one) yields nil.
func ClassifySubjectID(raw string, row int) *SubjectIDFinding {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	lower := strings.ToLower(value)
	if lower == "unknown" || lower == "unk" {
		return &SubjectIDFinding{
			Row:     row,
			Value:   value,
			Class:   SubjectUnknown,
			Message: `Subject ID should not be "unknown"`,
		}
	}

	if parts := strings.Fields(value); len(parts) >= 2 {
		for _, part := range parts {
			if len(part) > fullNamePartLen {
				return &SubjectIDFinding{
					Row:     row,
					Value:   value,
					Class:   SubjectFullName,
					Message: "Subject ID appears to be a full name. Use initials instead",
				}
			}
		}
	}

	if !bareInitialsRe.MatchString(value) && !dottedInitialsRe.MatchString(value) {
		return &SubjectIDFinding{
			Row:     row,
			Value:   value,
			Class:   SubjectInvalidFormat,
			Message: `Subject ID must be initials (e.g., "JD", "J.D.", "J.D.S")`,
		}
	}

	return nil
}
