package share_test

import (
	"errors"
	"net/url"
	"testing"

	"coursecal/internal/model"
	"coursecal/internal/share"
)

func sampleCalendar() *model.Calendar {
	return &model.Calendar{
		ID:   "cal-1",
		Name: "My Plan",
		Term: model.TermSpring2026,
		Courses: []model.CourseSelection{
			{CourseID: "cs101", Section: "B"},
			{CourseID: "hist150"},
			{CourseID: "math201"},
		},
		Hidden: map[string]bool{"math201": true},
	}
}

func TestEncodeDecodeToken(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves the selection", func(t *testing.T) {
		token, ok := share.EncodeToken(sampleCalendar())
		if !ok {
			t.Fatal("EncodeToken() ok = false")
		}

		rec, err := share.DecodeToken(token)
		if err != nil {
			t.Fatalf("DecodeToken() error = %v", err)
		}
		if rec.Name != "My Plan" {
			t.Errorf("name = %q, want %q", rec.Name, "My Plan")
		}
		if rec.Term != model.TermSpring2026 {
			t.Errorf("term = %q, want %q", rec.Term, model.TermSpring2026)
		}
		if len(rec.Courses) != 3 {
			t.Fatalf("got %d courses, want 3", len(rec.Courses))
		}
		if rec.Courses[0].CourseID != "cs101" || rec.Courses[0].Section != "B" {
			t.Errorf("first course = %+v", rec.Courses[0])
		}
		if rec.Courses[1].Hidden {
			t.Error("hist150 must not be hidden")
		}
		if !rec.Courses[2].Hidden {
			t.Error("math201 hidden flag lost")
		}
	})

	t.Run("empty calendar produces no token", func(t *testing.T) {
		if _, ok := share.EncodeToken(&model.Calendar{Name: "Empty"}); ok {
			t.Fatal("expected ok = false for a calendar with no courses")
		}
		if _, ok := share.EncodeToken(nil); ok {
			t.Fatal("expected ok = false for nil calendar")
		}
	})

	t.Run("tokens are URL safe", func(t *testing.T) {
		token, _ := share.EncodeToken(sampleCalendar())
		if escaped := url.QueryEscape(token); escaped != token {
			t.Errorf("token needs escaping: %q -> %q", token, escaped)
		}
	})
}

func TestDecodeToken_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not base58", token: "0OIl+/"},
		{name: "not compressed", token: "3yZe7d"},
		{name: "truncated", token: func() string {
			tok, _ := share.EncodeToken(sampleCalendar())
			return tok[:len(tok)/2]
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := share.DecodeToken(tt.token)
			if !errors.Is(err, share.ErrInvalidToken) {
				t.Errorf("DecodeToken(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestLink(t *testing.T) {
	t.Parallel()

	t.Run("appends the token parameter", func(t *testing.T) {
		link := share.Link("https://coursecal.local", "abc123")
		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("Link() produced an unparseable URL: %v", err)
		}
		if got := u.Query().Get(share.QueryParam); got != "abc123" {
			t.Errorf("token param = %q, want %q", got, "abc123")
		}
	})

	t.Run("bare host gets a scheme", func(t *testing.T) {
		link := share.Link("coursecal.local", "abc123")
		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("Link() produced an unparseable URL: %v", err)
		}
		if u.Scheme != "https" {
			t.Errorf("scheme = %q, want https", u.Scheme)
		}
	})
}

func TestTokenFromURL(t *testing.T) {
	t.Parallel()

	t.Run("extracts from a full link", func(t *testing.T) {
		got, ok := share.TokenFromURL("https://coursecal.local/?s=abc123")
		if !ok || got != "abc123" {
			t.Errorf("TokenFromURL() = %q, %v", got, ok)
		}
	})

	t.Run("bare token passes through", func(t *testing.T) {
		got, ok := share.TokenFromURL("abc123")
		if !ok || got != "abc123" {
			t.Errorf("TokenFromURL() = %q, %v", got, ok)
		}
	})

	t.Run("link without the parameter", func(t *testing.T) {
		if _, ok := share.TokenFromURL("https://coursecal.local/?other=1"); ok {
			t.Error("expected ok = false for a link without the token param")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, ok := share.TokenFromURL(""); ok {
			t.Error("expected ok = false for empty input")
		}
	})
}
