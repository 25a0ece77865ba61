package service

import "testing"

func TestCleanLLMJSONResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `[{"role":"Manager"}]`, `[{"role":"Manager"}]`},
		{"json fence", "```json\n[{\"role\":\"Manager\"}]\n```", `[{"role":"Manager"}]`},
		{"bare fence", "```\n[1,2]\n```", "[1,2]"},
		{"leading BOM", "\uFEFF[1,2]", "[1,2]"},
		{"BOM plus fence", "\uFEFF```json\n[1,2]\n```", "[1,2]"},
		{"surrounding whitespace", "  \n[1]\n  ", "[1]"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanLLMJSONResponse(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractFirstJSONArray(t *testing.T) {
	t.Run("array with prose around it", func(t *testing.T) {
		in := `Here you go: [{"role":"Manager","explanation":"a [bracketed] note"}] hope it helps`
		want := `[{"role":"Manager","explanation":"a [bracketed] note"}]`
		if got := extractFirstJSONArray(in); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("nested arrays balanced", func(t *testing.T) {
		in := `[[1,2],[3,4]] trailing`
		if got := extractFirstJSONArray(in); got != "[[1,2],[3,4]]" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("brackets inside strings ignored", func(t *testing.T) {
		in := `[{"text":"escaped \" and ] inside"}]`
		if got := extractFirstJSONArray(in); got != in {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("unbalanced returns empty", func(t *testing.T) {
		if got := extractFirstJSONArray(`[{"role":"Manager"`); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})

	t.Run("no array returns empty", func(t *testing.T) {
		if got := extractFirstJSONArray("no structure here"); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})
}
