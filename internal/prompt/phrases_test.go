package prompt

import (
	"testing"
)

func TestParsePhraseList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "only", []string{"only"}},
		{"trimmed", " a | b |c ", []string{"a", "b", "c"}},
		{"keeps empty slot", "a||c", []string{"a", "", "c"}},
		{"nfc", "café|x", []string{"café", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePhraseList(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePhraseList(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("phrase %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestQuantizeBounds(t *testing.T) {
	ranges := []struct{ min, max float64 }{
		{0, 360},
		{-90, 90},
		{0, 10},
	}
	for _, r := range ranges {
		for n := 1; n <= 9; n++ {
			if got := Quantize(r.min, r.min, r.max, n); got != 0 {
				t.Errorf("Quantize(min) range %v n=%d = %d, want 0", r, n, got)
			}
			if got := Quantize(r.max, r.min, r.max, n); got != n-1 {
				t.Errorf("Quantize(max) range %v n=%d = %d, want %d", r, n, got, n-1)
			}
			step := (r.max - r.min) / 97
			for v := r.min; v <= r.max; v += step {
				got := Quantize(v, r.min, r.max, n)
				if got < 0 || got > n-1 {
					t.Fatalf("Quantize(%v) range %v n=%d = %d out of [0,%d]", v, r, n, got, n-1)
				}
			}
		}
	}
}

func TestQuantizeExample(t *testing.T) {
	if got := Quantize(200, 0, 360, 4); got != 2 {
		t.Errorf("Quantize(200, 0, 360, 4) = %d, want 2", got)
	}
	if got := Quantize(5, 5, 5, 3); got != 0 {
		t.Errorf("degenerate range = %d, want 0", got)
	}
}

func TestJoinClausesSkipsEmpty(t *testing.T) {
	if got := joinClauses(", ", "a", "", " ", "b"); got != "a, b" {
		t.Errorf("joinClauses = %q", got)
	}
}
