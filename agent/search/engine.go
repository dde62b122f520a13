package search

import (
	"sort"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

// Search ranks catalog entities for a query. Pure in (query, catalog,
// config): the same inputs always produce the same ordered output.
//
// A query with zero recognized filter terms bypasses scoring and returns the
// entire catalog ordered by name. Otherwise every entity gets a weighted-sum
// score, the landmark bonus is applied, entities below the specificity
// threshold are dropped, and the rest are ordered by score descending with
// alphabetical name tie-breaks.
func Search(q Query, catalog []contractx.Entity, cfg Config) []contractx.ScoredResult {
	if len(catalog) == 0 {
		return []contractx.ScoredResult{}
	}

	if !q.HasFilters() {
		return fullCatalog(catalog)
	}

	threshold := cfg.thresholdFor(q)
	results := make([]contractx.ScoredResult, 0, len(catalog))
	for _, entity := range catalog {
		score, matched := scoreEntity(q, entity, cfg)
		if score < threshold {
			continue
		}
		results = append(results, contractx.ScoredResult{
			Entity:  entity,
			Score:   score,
			Matched: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entity.Name < results[j].Entity.Name
	})
	return results
}

func scoreEntity(q Query, entity contractx.Entity, cfg Config) (float64, map[string]float64) {
	score := 0.0
	matched := make(map[string]float64, len(cfg.Factors))
	for _, f := range cfg.Factors {
		raw := f.Score(q, entity)
		if raw <= 0 {
			continue
		}
		contribution := f.Weight * raw
		score += contribution
		matched[f.Name] = contribution
	}

	// The flat landmark bonus lands before threshold filtering so a genuine
	// landmark hit clears the specific-location threshold.
	if q.Slots.Landmark != "" && landmarkMatch(q, entity) > 0 {
		score += cfg.LandmarkBonus
		matched["landmark_bonus"] = cfg.LandmarkBonus
	}
	return score, matched
}

func fullCatalog(catalog []contractx.Entity) []contractx.ScoredResult {
	results := make([]contractx.ScoredResult, 0, len(catalog))
	for _, entity := range catalog {
		results = append(results, contractx.ScoredResult{Entity: entity})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Entity.Name < results[j].Entity.Name
	})
	return results
}
