package search

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/ano333333/llm-time-manager/internal/app/models"
	"github.com/ano333333/llm-time-manager/internal/app/pages"
)

type entry struct {
	item models.NavItem
	text string
}

// Index matches header queries against the navigation entries.
type Index struct {
	entries []entry
}

// NewIndex indexes every entry of nav by its label and, when table declares
// the entry's path, the page heading and description.
func NewIndex(nav models.Navigation, table pages.Table) *Index {
	idx := &Index{entries: make([]entry, 0, len(nav.Items))}
	for _, item := range nav.Items {
		fields := []string{item.Label}
		if page, ok := table.Resolve(item.Path); ok {
			fields = append(fields, page.Heading, page.Description)
		}
		idx.entries = append(idx.entries, entry{
			item: item,
			text: Normalize(strings.Join(fields, "\n")),
		})
	}
	return idx
}

// Normalize applies NFKC and Unicode case folding, so full width and half
// width forms and letter case compare equal.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// Terms splits a query into distinct normalised terms.
func Terms(query string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, t := range strings.Fields(Normalize(query)) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	return terms
}

// Search returns the entries containing every term of query, in navigation
// order. An empty query matches nothing.
func (idx *Index) Search(query string) []models.NavItem {
	terms := Terms(query)
	if len(terms) == 0 {
		return nil
	}

	var out []models.NavItem
	for _, e := range idx.entries {
		if containsAll(e.text, terms) {
			out = append(out, e.item)
		}
	}
	return out
}

// containsAll reports whether every term occurs in text. FindAll reports
// non-overlapping matches only, so terms hidden by an overlapping match are
// searched again on their own until a pass finds nothing new.
func containsAll(text string, terms []string) bool {
	missing := terms
	for len(missing) > 0 {
		ac := newMatcher(missing)
		hit := make([]bool, len(missing))
		found := false
		for _, m := range ac.FindAll(text) {
			hit[m.Pattern()] = true
			found = true
		}
		if !found {
			return false
		}
		var next []string
		for i, t := range missing {
			if !hit[i] {
				next = append(next, t)
			}
		}
		missing = next
	}
	return true
}

func newMatcher(terms []string) ahocorasick.AhoCorasick {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: false,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	return builder.Build(terms)
}
