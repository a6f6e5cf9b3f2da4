// Package query decides whether a search query asks for a multi-launch and
// which tokens it names.
package query

import (
	"strings"

	"multilaunch/internal/groups"
)

// Delimiters are the characters that separate tokens in a manual request
const Delimiters = ";+"

// MatchKind says how a query was recognized
type MatchKind int

const (
	// MatchGroup is an exact match on a stored group name
	MatchGroup MatchKind = iota
	// MatchManual is a delimiter separated list typed by the user
	MatchManual
)

// String returns the string representation of the match kind
func (k MatchKind) String() string {
	switch k {
	case MatchGroup:
		return "group"
	case MatchManual:
		return "manual"
	default:
		return "unknown"
	}
}

// GroupLookup finds a group by exact name
type GroupLookup interface {
	Get(name string) (groups.TokenList, bool)
}

// Classification is the outcome of a recognized query
type Classification struct {
	Query  string
	Kind   MatchKind
	Group  string // set for MatchGroup
	Tokens groups.TokenList
}

// Classify inspects the raw search terms. ok is false when the query is not
// a multi-launch request and the host's default search should handle it.
func Classify(terms []string, lookup GroupLookup) (c Classification, ok bool) {
	q := strings.TrimSpace(strings.Join(terms, " "))
	if q == "" {
		return Classification{}, false
	}

	if lookup != nil {
		if tokens, found := lookup.Get(q); found {
			return Classification{
				Query:  q,
				Kind:   MatchGroup,
				Group:  q,
				Tokens: append(groups.TokenList(nil), tokens...),
			}, true
		}
	}

	if !strings.ContainsAny(q, Delimiters) {
		return Classification{}, false
	}

	pieces := strings.FieldsFunc(q, isDelimiter)
	tokens := make(groups.TokenList, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}

	// a single name with a stray delimiter stays with the default search
	if len(tokens) < 2 {
		return Classification{}, false
	}

	return Classification{
		Query:  q,
		Kind:   MatchManual,
		Tokens: tokens,
	}, true
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(Delimiters, r)
}
