package groups

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Valid(t *testing.T) {
	m, err := Load(`{"work": ["firefox", "org.gnome.Terminal"], "1": ["writer","calc"]}`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff([]string{"work", "1"}, m.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	work, ok := m.Get("work")
	if !ok {
		t.Fatal("expected group work")
	}
	if diff := cmp.Diff(TokenList{"firefox", "org.gnome.Terminal"}, work); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_NormalizesKeysAndTokens(t *testing.T) {
	m, err := Load(`{" g ": [" a", "", "b  ", "   "], "  ": ["x"]}`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if m.Len() != 1 {
		t.Fatalf("expected 1 group, got %d (%v)", m.Len(), m.Names())
	}
	tokens, ok := m.Get("g")
	if !ok {
		t.Fatal("expected trimmed key g")
	}
	if diff := cmp.Diff(TokenList{"a", "b"}, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DuplicateKeyLastWins(t *testing.T) {
	m, err := Load(`{"a": ["1"], "b": ["2"], "a": ["3"]}`)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, m.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	tokens, _ := m.Get("a")
	if diff := cmp.Diff(TokenList{"3"}, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Malformed_ReturnsDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"truncated", `{"work": ["firefox"`},
		{"array root", `["firefox"]`},
		{"string root", `"work"`},
		{"null root", `null`},
		{"string value", `{"work": "firefox"}`},
		{"object value", `{"work": {"a": 1}}`},
		{"null value", `{"work": null}`},
		{"number element", `{"work": ["firefox", 3]}`},
		{"trailing data", `{"work": ["firefox"]} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load(tt.raw)
			var parseErr *ConfigParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ConfigParseError, got %v", err)
			}
			if m.Len() != Default().Len() {
				t.Errorf("expected default mapping, got %v", m.Names())
			}
			if m.groups == nil {
				t.Error("default mapping must be usable")
			}
		})
	}
}

func TestGet_CaseSensitive(t *testing.T) {
	m, _ := Load(`{"Work": ["firefox"]}`)
	if _, ok := m.Get("work"); ok {
		t.Error("lookup should be case-sensitive")
	}
	if _, ok := m.Get("Work"); !ok {
		t.Error("exact lookup should succeed")
	}
}

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		in   string
		want TokenList
	}{
		{"a, b ,c", TokenList{"a", "b", "c"}},
		{"firefox", TokenList{"firefox"}},
		{" , ,", TokenList{}},
		{"", TokenList{}},
		{"a,,b", TokenList{"a", "b"}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SplitTokens(tt.in)); diff != "" {
			t.Errorf("SplitTokens(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestSerialize_Compact(t *testing.T) {
	m, _ := Load(`{"work": ["firefox", "calc"], "x<y": ["a&b"]}`)
	got := Serialize(m)
	want := `{"work":["firefox","calc"],"x<y":["a&b"]}`
	if got != want {
		t.Errorf("Serialize() = %s, want %s", got, want)
	}
}

func TestSerialize_Empty(t *testing.T) {
	if got := Serialize(Default()); got != "{}" {
		t.Errorf("Serialize(Default()) = %s", got)
	}
}

func TestIndent(t *testing.T) {
	m, _ := Load(`{"work": ["firefox", "calc"], "dev": []}`)
	want := "{\n  \"work\": [\"firefox\", \"calc\"],\n  \"dev\": []\n}"
	if got := Indent(m); got != want {
		t.Errorf("Indent() =\n%s\nwant\n%s", got, want)
	}

	reloaded, err := Load(Indent(m))
	if err != nil {
		t.Fatalf("Indent output should parse: %v", err)
	}
	if diff := cmp.Diff(m.Groups(), reloaded.Groups()); diff != "" {
		t.Errorf("indent round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	m, _ := Load(`{"a": ["1"]}`)
	c := m.Clone()
	c.set("b", TokenList{"2"})

	if m.Len() != 1 {
		t.Errorf("original should be unchanged, got %v", m.Names())
	}
}
