package validate

import "testing"

func TestClassifySubjectID(t *testing.T) {
	tests := []struct {
		value string
		want  SubjectIDClass // "" means accepted
	}{
		{"unknown", SubjectUnknown},
		{"UNKNOWN", SubjectUnknown},
		{"unk", SubjectUnknown},
		{"UNK", SubjectUnknown},
		{" unknown ", SubjectUnknown},
		{"John Doe", SubjectFullName},
		{"jane marie smith", SubjectFullName},
		{"J Smith", SubjectFullName},
		{"123", SubjectInvalidFormat},
		{"J-D", SubjectInvalidFormat},
		{"ABCDE", SubjectInvalidFormat}, // five bare letters is too long
		{"J D", SubjectInvalidFormat},   // two short parts, not a name, not initials
		{"J..D", SubjectInvalidFormat},
		{"JD", ""},
		{"J", ""}, // single letter is within the 1-4 range
		{"ABCD", ""},
		{"J.D.", ""},
		{"J.D.S", ""},
		{"j.d.", ""},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := ClassifySubjectID(tt.value, 2)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("ClassifySubjectID(%q) = %+v, want nil", tt.value, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ClassifySubjectID(%q) = nil, want class %q", tt.value, tt.want)
			}
			if got.Class != tt.want {
				t.Errorf("class = %q, want %q", got.Class, tt.want)
			}
			if got.Message == "" {
				t.Error("finding should carry a message")
			}
		})
	}
}

func TestClassifySubjectIDPriorityOrder(t *testing.T) {
	// "unknown" contains no whitespace but would also fail the initials
	// regexes; the placeholder check must win.
	got := ClassifySubjectID("Unknown", 2)
	if got == nil || got.Class != SubjectUnknown {
		t.Fatalf("got %+v, want unknown classification", got)
	}

	// A multi-word value with a long part is a name even though it also
	// fails the initials check.
	got = ClassifySubjectID("John D", 2)
	if got == nil || got.Class != SubjectFullName {
		t.Fatalf("got %+v, want name classification", got)
	}
}

func TestClassifySubjectIDIsPure(t *testing.T) {
	first := ClassifySubjectID("John Doe", 4)
	second := ClassifySubjectID("John Doe", 4)
	if first == nil || second == nil {
		t.Fatal("expected findings")
	}
	if *first != *second {
		t.Errorf("same input produced different findings: %+v vs %+v", *first, *second)
	}
}
