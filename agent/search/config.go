package search

import contractx "github.com/mesra-labs/mesra-agent/agent/contract"

// Factor is one scoring dimension. Score maps (query, entity) into [0,1];
// the weight scales its share of the final score.
type Factor struct {
	Name   string
	Weight float64
	Score  func(Query, contractx.Entity) float64
}

// Config parameterizes the engine per domain: the applicable factors, their
// weights (summing to 1.0 within a domain), the inclusion thresholds by query
// specificity, and the flat landmark bonus.
type Config struct {
	Domain contractx.EntityKind

	Factors []Factor

	// Minimum-score thresholds. A landmark query must clear the specific
	// threshold, a service-filtered query the service one, anything else the
	// broad one.
	BroadThreshold    float64
	ServiceThreshold  float64
	SpecificThreshold float64

	// LandmarkBonus is added before threshold filtering when the query names
	// a well-known location the entity sits at, so a true landmark hit
	// outranks generic location matches.
	LandmarkBonus float64
}

// Relevant projects session slots down to the filters this domain can score.
// A lingering outlet filter (say a landmark from two turns ago) must not
// starve a product search that has no landmark factor.
func (c Config) Relevant(s contractx.Slots) contractx.Slots {
	switch c.Domain {
	case contractx.EntityProduct:
		return contractx.Slots{
			Material:   s.Material,
			Collection: s.Collection,
			PriceMin:   s.PriceMin,
			PriceMax:   s.PriceMax,
		}
	case contractx.EntityOutlet:
		return contractx.Slots{
			Location: s.Location,
			Landmark: s.Landmark,
			Service:  s.Service,
		}
	default:
		return s
	}
}

func (c Config) thresholdFor(q Query) float64 {
	switch {
	case q.Slots.Landmark != "":
		return c.SpecificThreshold
	case q.Slots.Service != "":
		return c.ServiceThreshold
	default:
		return c.BroadThreshold
	}
}

// ProductConfig weights name and material highest; collection is a weak
// discriminator on this catalog.
func ProductConfig() Config {
	return Config{
		Domain: contractx.EntityProduct,
		Factors: []Factor{
			{Name: "name_match", Weight: 0.30, Score: nameMatch},
			{Name: "material_match", Weight: 0.25, Score: materialMatch},
			{Name: "feature_match", Weight: 0.20, Score: featureMatch},
			{Name: "price_fit", Weight: 0.15, Score: priceFit},
			{Name: "collection_match", Weight: 0.10, Score: collectionMatch},
		},
		BroadThreshold:    0.1,
		ServiceThreshold:  0.3,
		SpecificThreshold: 2.0,
		LandmarkBonus:     3.0,
	}
}

// OutletConfig leans on location and service; the landmark factor covers the
// [0,1] share while the flat bonus handles outranking.
//
// The service threshold must sit between the service weight and any other
// single factor weight: a matched service flag alone has to clear it, a
// location-only match must not. Anything higher than the service weight
// filters out every true service match.
func OutletConfig() Config {
	return Config{
		Domain: contractx.EntityOutlet,
		Factors: []Factor{
			{Name: "name_match", Weight: 0.25, Score: nameMatch},
			{Name: "location_match", Weight: 0.25, Score: locationMatch},
			{Name: "service_match", Weight: 0.35, Score: serviceMatch},
			{Name: "landmark_match", Weight: 0.15, Score: landmarkMatch},
		},
		BroadThreshold:    0.1,
		ServiceThreshold:  0.3,
		SpecificThreshold: 2.0,
		LandmarkBonus:     3.0,
	}
}
