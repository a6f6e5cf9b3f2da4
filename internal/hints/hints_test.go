package hints

import (
	"strings"
	"testing"

	"multilaunch/internal/models"
	"multilaunch/internal/provider"
	"multilaunch/internal/query"
)

type app string

func (a app) ID() string    { return string(a) }
func (a app) Name() string  { return string(a) }
func (a app) Launch() error { return nil }

func TestHintTypeString(t *testing.T) {
	tests := []struct {
		typ      HintType
		expected string
	}{
		{TypeIdle, "idle"},
		{TypeSearch, "search"},
		{TypeStray, "stray"},
		{TypeReady, "ready"},
		{TypePartial, "partial"},
		{TypeWithheld, "withheld"},
		{HintType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("HintType(%d).String() = %s, want %s", tt.typ, got, tt.expected)
		}
	}
}

func TestAnalyze(t *testing.T) {
	two := []models.Application{app("Firefox"), app("Terminal")}
	one := []models.Application{app("Firefox")}

	tests := []struct {
		name     string
		terms    []string
		out      provider.Outcome
		wantType HintType
		contains string
	}{
		{
			name:     "empty",
			terms:    []string{""},
			wantType: TypeIdle,
			contains: "group name",
		},
		{
			name:     "plain word",
			terms:    []string{"firefox"},
			wantType: TypeSearch,
		},
		{
			name:     "stray delimiter",
			terms:    []string{"firefox;"},
			wantType: TypeStray,
			contains: "at least two",
		},
		{
			name:  "manual ready",
			terms: []string{"fire+term"},
			out: provider.Outcome{
				Classification: query.Classification{Kind: query.MatchManual},
				Matched:        true, Apps: two, Present: true,
			},
			wantType: TypeReady,
			contains: "Manual request: 2 apps ready",
		},
		{
			name:  "group partial",
			terms: []string{"work"},
			out: provider.Outcome{
				Classification: query.Classification{Kind: query.MatchGroup, Group: "work"},
				Matched:        true, Apps: one, Unresolved: []string{"slack"}, Present: true,
			},
			wantType: TypePartial,
			contains: "no match for slack",
		},
		{
			name:  "manual shrunk to one",
			terms: []string{"fire;zzz"},
			out: provider.Outcome{
				Classification: query.Classification{Kind: query.MatchManual},
				Matched:        true, Apps: one, Unresolved: []string{"zzz"},
			},
			wantType: TypeWithheld,
			contains: "only Firefox matched",
		},
		{
			name:  "group with nothing resolved",
			terms: []string{"empty"},
			out: provider.Outcome{
				Classification: query.Classification{Kind: query.MatchGroup, Group: "empty"},
				Matched:        true,
			},
			wantType: TypeWithheld,
			contains: "nothing to launch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Analyze(tt.terms, tt.out)
			if h.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", h.Type, tt.wantType)
			}
			if !strings.Contains(h.Message, tt.contains) {
				t.Errorf("Message = %q, want it to contain %q", h.Message, tt.contains)
			}
		})
	}
}

func TestHintIcon(t *testing.T) {
	if got := (&Hint{Type: TypeReady}).Icon(); got != "[OK]" {
		t.Errorf("Icon() = %s", got)
	}
	if got := (&Hint{Type: TypeStray}).Icon(); got != "[!!]" {
		t.Errorf("Icon() = %s", got)
	}
	var h *Hint
	if !h.IsEmpty() {
		t.Error("nil hint should be empty")
	}
}
