// Package hints turns the outcome of a query into a one-line status hint.
package hints

import (
	"fmt"
	"strings"

	"multilaunch/internal/provider"
	"multilaunch/internal/query"
)

// HintType represents the kind of hint
type HintType int

const (
	// TypeIdle is shown for an empty query
	TypeIdle HintType = iota
	// TypeSearch means the query is left to the default search
	TypeSearch
	// TypeStray is a single name followed by a stray delimiter
	TypeStray
	// TypeReady means the result is shown and can be launched
	TypeReady
	// TypePartial is a shown result with some tokens unresolved
	TypePartial
	// TypeWithheld is a recognized request whose result is not shown
	TypeWithheld
)

// String returns the string representation of the hint type
func (t HintType) String() string {
	switch t {
	case TypeIdle:
		return "idle"
	case TypeSearch:
		return "search"
	case TypeStray:
		return "stray"
	case TypeReady:
		return "ready"
	case TypePartial:
		return "partial"
	case TypeWithheld:
		return "withheld"
	default:
		return "unknown"
	}
}

// Action is a key the user can press next
type Action struct {
	Key   string
	Label string
}

// Hint is one status line
type Hint struct {
	Type    HintType
	Message string
	Actions []Action
	Missing []string // tokens without a match
}

// Icon returns a short marker for the hint type
func (h *Hint) Icon() string {
	switch h.Type {
	case TypeReady:
		return "[OK]"
	case TypePartial:
		return "[..]"
	case TypeWithheld, TypeStray:
		return "[!!]"
	case TypeIdle:
		return "[HI]"
	default:
		return "[--]"
	}
}

// IsEmpty reports whether there is nothing worth showing
func (h *Hint) IsEmpty() bool {
	return h == nil || h.Message == ""
}

// Analyze builds the hint for terms and their outcome
func Analyze(terms []string, out provider.Outcome) *Hint {
	q := strings.TrimSpace(strings.Join(terms, " "))
	if q == "" {
		return &Hint{
			Type:    TypeIdle,
			Message: "Type a group name or apps joined by ; or +",
			Actions: []Action{{Key: "tab", Label: "Groups"}, {Key: "f1", Label: "Help"}},
		}
	}

	if !out.Matched {
		if strings.ContainsAny(q, query.Delimiters) {
			return &Hint{
				Type:    TypeStray,
				Message: "Name at least two apps to launch them together",
			}
		}
		return &Hint{
			Type:    TypeSearch,
			Message: "Not a group or multi-app query",
		}
	}

	c := out.Classification
	subject := "Manual request"
	if c.Kind == query.MatchGroup {
		subject = fmt.Sprintf("Group %q", c.Group)
	}

	if !out.Present {
		msg := fmt.Sprintf("%s: nothing to launch", subject)
		if len(out.Apps) == 1 {
			msg = fmt.Sprintf("%s: only %s matched", subject, out.Apps[0].Name())
		}
		return &Hint{
			Type:    TypeWithheld,
			Message: msg,
			Missing: out.Unresolved,
		}
	}

	launch := []Action{{Key: "enter", Label: "Launch"}}
	if len(out.Unresolved) > 0 {
		return &Hint{
			Type:    TypePartial,
			Message: fmt.Sprintf("%s: no match for %s", subject, strings.Join(out.Unresolved, ", ")),
			Actions: launch,
			Missing: out.Unresolved,
		}
	}

	apps := "apps"
	if len(out.Apps) == 1 {
		apps = "app"
	}
	return &Hint{
		Type:    TypeReady,
		Message: fmt.Sprintf("%s: %d %s ready", subject, len(out.Apps), apps),
		Actions: launch,
	}
}
