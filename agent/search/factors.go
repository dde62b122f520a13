package search

import (
	"strings"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

// nameMatch scores the overlap between query terms and entity name tokens.
// A query that reproduces the full name scores 1.0.
func nameMatch(q Query, e contractx.Entity) float64 {
	if len(q.Terms) == 0 {
		return 0
	}
	nameTokens := tokenSet(e.Name)
	if len(nameTokens) == 0 {
		return 0
	}
	hit := 0
	for _, term := range q.Terms {
		if nameTokens[term] || nameTokens[strings.TrimSuffix(term, "s")] {
			hit++
		}
	}
	if hit == 0 {
		return 0
	}
	if hit >= len(nameTokens) {
		return 1
	}
	return float64(hit) / float64(len(nameTokens))
}

func materialMatch(q Query, e contractx.Entity) float64 {
	if q.Slots.Material == "" {
		return 0
	}
	want := strings.ToLower(q.Slots.Material)
	for _, m := range e.Materials {
		if strings.EqualFold(m, want) || strings.Contains(strings.ToLower(m), want) {
			return 1
		}
	}
	return 0
}

func featureMatch(q Query, e contractx.Entity) float64 {
	if len(q.Terms) == 0 || len(e.Features) == 0 {
		return 0
	}
	featureTokens := make(map[string]bool)
	for _, f := range e.Features {
		for tok := range tokenSet(f) {
			featureTokens[tok] = true
		}
	}
	hit := 0
	for _, term := range q.Terms {
		if featureTokens[term] {
			hit++
		}
	}
	if hit == 0 {
		return 0
	}
	if hit > 2 {
		hit = 2
	}
	return float64(hit) / 2
}

// priceFit is 1 when the price sits inside every requested bound, 0 outside.
// Without a price filter it contributes nothing.
func priceFit(q Query, e contractx.Entity) float64 {
	min, max := q.Slots.PriceMin, q.Slots.PriceMax
	if min == nil && max == nil {
		return 0
	}
	if min != nil && e.Price < *min {
		return 0
	}
	if max != nil && e.Price > *max {
		return 0
	}
	return 1
}

func collectionMatch(q Query, e contractx.Entity) float64 {
	if q.Slots.Collection == "" || e.Collection == "" {
		return 0
	}
	if strings.EqualFold(q.Slots.Collection, e.Collection) {
		return 1
	}
	return 0
}

func locationMatch(q Query, e contractx.Entity) float64 {
	if q.Slots.Location == "" {
		return 0
	}
	want := strings.ToLower(q.Slots.Location)
	if strings.Contains(strings.ToLower(e.City), want) {
		return 1
	}
	if strings.Contains(strings.ToLower(e.Address), want) {
		return 1
	}
	return 0
}

// serviceMatch compares the normalized requested service against the
// entity's service flags. Aliases were already canonicalized at extraction
// time, so "24 hours", "24-hour" and "24hr" all arrive as one value.
func serviceMatch(q Query, e contractx.Entity) float64 {
	if q.Slots.Service == "" {
		return 0
	}
	want := normalizeService(q.Slots.Service)
	for _, s := range e.Services {
		if normalizeService(s) == want {
			return 1
		}
	}
	return 0
}

func landmarkMatch(q Query, e contractx.Entity) float64 {
	if q.Slots.Landmark == "" {
		return 0
	}
	want := strings.ToLower(q.Slots.Landmark)
	if strings.Contains(strings.ToLower(e.Address), want) {
		return 1
	}
	if strings.Contains(strings.ToLower(e.Name), want) {
		return 1
	}
	return 0
}

func normalizeService(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	return strings.Join(fields, "-")
}

func tokenSet(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
