package entities

import "testing"

func TestKeyPrefersExplicitID(t *testing.T) {
	q := Question{ID: "anatomy-12", Text: "Which nerve?"}
	if q.Key() != "anatomy-12" {
		t.Errorf("Key = %q, want anatomy-12", q.Key())
	}
}

func TestKeyFallsBackToTextHash(t *testing.T) {
	a := Question{Text: "Which nerve?"}
	b := Question{Text: "Which nerve?"}
	c := Question{Text: "Which artery?"}

	if a.Key() != b.Key() {
		t.Error("identical texts should produce identical keys")
	}
	if a.Key() == c.Key() {
		t.Error("different texts should produce different keys")
	}
	if a.Key() == "" {
		t.Error("fallback key is empty")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want bool
	}{
		{"ok", Question{Text: "q", Choices: []string{"a", "b"}, Answer: "a"}, true},
		{"answer not in choices", Question{Text: "q", Choices: []string{"a", "b"}, Answer: "c"}, false},
		{"single choice", Question{Text: "q", Choices: []string{"a"}, Answer: "a"}, false},
		{"empty text", Question{Choices: []string{"a", "b"}, Answer: "a"}, false},
		{"duplicate choices", Question{Text: "q", Choices: []string{"a", "a"}, Answer: "a"}, false},
		{"empty choice", Question{Text: "q", Choices: []string{"a", ""}, Answer: "a"}, false},
		{"empty answer with empty choice", Question{Text: "q", Choices: []string{"", "a"}, Answer: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
