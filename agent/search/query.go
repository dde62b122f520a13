package search

import (
	"strings"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

// Query is the parsed search input: free-text terms for name/feature
// matching plus the structured filters accumulated in the session slots.
type Query struct {
	Raw   string
	Terms []string
	Slots contractx.Slots
}

var queryStopwords = map[string]bool{
	"show": true, "me": true, "all": true, "the": true, "a": true, "an": true,
	"any": true, "some": true, "find": true, "looking": true, "for": true,
	"do": true, "you": true, "have": true, "i": true, "want": true,
	"need": true, "please": true, "in": true, "at": true, "near": true,
	"with": true, "and": true, "or": true, "of": true, "is": true,
	"are": true, "there": true, "what": true, "which": true, "where": true,
}

func BuildQuery(text string, slots contractx.Slots) Query {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if queryStopwords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return Query{Raw: text, Terms: terms, Slots: slots}
}

// HasFilters reports whether the query carries any recognized filter term.
// Without one the engine skips scoring entirely and returns the whole
// catalog; "show everything when unspecific" is a contract, not a fallback.
func (q Query) HasFilters() bool {
	s := q.Slots
	return s.Material != "" || s.Service != "" || s.Location != "" ||
		s.Landmark != "" || s.Collection != "" ||
		s.PriceMin != nil || s.PriceMax != nil
}
