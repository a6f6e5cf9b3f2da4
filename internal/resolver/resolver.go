// Package resolver maps query tokens to installed applications.
package resolver

import (
	"slices"
	"strings"
	"unicode/utf8"

	"multilaunch/internal/models"
)

// Resolve returns the best catalog match for token. A candidate matches when
// its lower-cased identifier or display name contains the lower-cased token.
// Candidates whose display name starts with the token rank first, then
// shorter display names, then catalog order.
func Resolve(token string, catalog []models.Application) (models.Application, bool) {
	needle := strings.ToLower(token)

	type candidate struct {
		app    models.Application
		prefix bool
		length int
	}

	var candidates []candidate
	for _, app := range catalog {
		id := strings.ToLower(app.ID())
		name := strings.ToLower(app.Name())
		if !strings.Contains(id, needle) && !strings.Contains(name, needle) {
			continue
		}
		candidates = append(candidates, candidate{
			app:    app,
			prefix: strings.HasPrefix(name, needle),
			length: utf8.RuneCountInString(app.Name()),
		})
	}

	if len(candidates) == 0 {
		return nil, false
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.prefix != b.prefix {
			if a.prefix {
				return -1
			}
			return 1
		}
		return a.length - b.length
	})
	return candidates[0].app, true
}

// ResolveAll resolves every token in order. Tokens without a match are
// omitted; the remaining apps keep the tokens' relative order.
func ResolveAll(tokens []string, catalog []models.Application) []models.Application {
	apps := make([]models.Application, 0, len(tokens))
	for _, token := range tokens {
		if app, ok := Resolve(token, catalog); ok {
			apps = append(apps, app)
		}
	}
	return apps
}

// Unresolved returns the tokens that have no match in catalog
func Unresolved(tokens []string, catalog []models.Application) []string {
	var missing []string
	for _, token := range tokens {
		if _, ok := Resolve(token, catalog); !ok {
			missing = append(missing, token)
		}
	}
	return missing
}
