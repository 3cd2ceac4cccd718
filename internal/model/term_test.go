package model_test

import (
	"testing"

	"coursecal/internal/model"
)

func TestNormalizeTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  model.Term
	}{
		{input: "Fall 2025", want: model.TermFall2025},
		{input: "fall 2025", want: model.TermFall2025},
		{input: "2026 Spring", want: model.TermSpring2026},
		{input: "Summer 2026", want: model.TermSummer2026},
		{input: "Fall 2026", want: model.TermFall2026},
		// Season without a year matches the first supported term of
		// that season.
		{input: "spring", want: model.TermSpring2026},
		// Unrecognized values fall back to the default.
		{input: "Winter 1999", want: model.DefaultTerm()},
		{input: "", want: model.DefaultTerm()},
		{input: "garbage", want: model.DefaultTerm()},
	}

	for _, tt := range tests {
		if got := model.NormalizeTerm(tt.input); got != tt.want {
			t.Errorf("NormalizeTerm(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTermForLabel(t *testing.T) {
	t.Parallel()

	t.Run("catalog-style label with leading year", func(t *testing.T) {
		got, ok := model.TermForLabel("2025 Fall")
		if !ok {
			t.Fatal("TermForLabel() ok = false, want true")
		}
		if got != model.TermFall2025 {
			t.Errorf("got %q, want %q", got, model.TermFall2025)
		}
	})

	t.Run("unknown season fails", func(t *testing.T) {
		if _, ok := model.TermForLabel("Autumn 2025"); ok {
			t.Fatal("TermForLabel() ok = true, want false")
		}
	})

	t.Run("year outside supported terms fails", func(t *testing.T) {
		if _, ok := model.TermForLabel("Fall 2030"); ok {
			t.Fatal("TermForLabel() ok = true, want false")
		}
	})
}

func TestTermSeasonAndYear(t *testing.T) {
	t.Parallel()

	if got := model.TermSpring2026.Season(); got != "spring" {
		t.Errorf("Season() = %q, want %q", got, "spring")
	}
	if got := model.TermSpring2026.Year(); got != 2026 {
		t.Errorf("Year() = %d, want %d", got, 2026)
	}
	if got := model.Term("whatever").Season(); got != "" {
		t.Errorf("Season() = %q, want empty", got)
	}
	if got := model.Term("fall").Year(); got != 0 {
		t.Errorf("Year() = %d, want 0", got)
	}
}

func TestSupportedTermsOrder(t *testing.T) {
	t.Parallel()

	terms := model.SupportedTerms()
	if len(terms) == 0 {
		t.Fatal("no supported terms")
	}
	if terms[0] != model.DefaultTerm() {
		t.Errorf("first supported term = %q, want default %q", terms[0], model.DefaultTerm())
	}
}
