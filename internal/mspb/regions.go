package mspb

import (
	"fmt"
	"sort"
)

// Census-style regional taxonomy used for the summary table. Each state
// (plus DC) belongs to exactly one region; territories such as PR or GU
// fall outside the taxonomy and are excluded from regional rollups.
const (
	RegionNorthEast   = "North East"
	RegionMidAtlantic = "Mid-Atlantic"
	RegionMidwest     = "Midwest"
	RegionSouthWest   = "South West"
	RegionWest        = "West"
	RegionSouth       = "South"
)

// RegionNames lists the default regions in their canonical presentation
// order.
var RegionNames = []string{
	RegionNorthEast,
	RegionMidAtlantic,
	RegionMidwest,
	RegionSouthWest,
	RegionWest,
	RegionSouth,
}

var regionStates = map[string][]string{
	RegionNorthEast:   {"ME", "VT", "NH", "CT", "MA", "RI"},
	RegionMidAtlantic: {"NY", "PA", "NJ", "MD", "DE", "DC"},
	RegionMidwest:     {"OH", "MI", "IN", "IL", "WI", "IA", "MO", "MN", "ND", "SD", "NE", "KS"},
	RegionSouthWest:   {"OK", "TX", "AZ", "NM"},
	RegionWest:        {"CO", "WY", "MT", "UT", "ID", "WA", "OR", "NV", "CA", "AK", "HI"},
	RegionSouth:       {"VA", "WV", "KY", "NC", "TN", "AR", "SC", "GA", "AL", "MS", "LA", "FL"},
}

// Taxonomy maps states to named regions. The zero value is unusable;
// build one with NewTaxonomy or use DefaultTaxonomy.
type Taxonomy struct {
	names   []string
	byState map[string]string
}

// NewTaxonomy builds a taxonomy from a region-to-states map. Every
// state must appear in at most one region. Region names are ordered
// alphabetically (callers re-sort rollup rows by median anyway).
func NewTaxonomy(regions map[string][]string) (*Taxonomy, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("taxonomy has no regions")
	}

	t := &Taxonomy{byState: make(map[string]string)}
	for region, states := range regions {
		if region == "" {
			return nil, fmt.Errorf("taxonomy has an unnamed region")
		}
		t.names = append(t.names, region)
		for _, s := range states {
			if prev, dup := t.byState[s]; dup {
				return nil, fmt.Errorf("state %s appears in both %q and %q", s, prev, region)
			}
			t.byState[s] = region
		}
	}
	sort.Strings(t.names)
	return t, nil
}

var defaultTaxonomy = &Taxonomy{
	names: RegionNames,
	byState: func() map[string]string {
		m := make(map[string]string)
		for region, states := range regionStates {
			for _, s := range states {
				m[s] = region
			}
		}
		return m
	}(),
}

// DefaultTaxonomy returns the built-in six-region taxonomy.
func DefaultTaxonomy() *Taxonomy { return defaultTaxonomy }

// Names returns the region names in presentation order.
func (t *Taxonomy) Names() []string { return t.names }

// RegionFor returns the region a state belongs to. ok is false for
// state codes outside the taxonomy.
func (t *Taxonomy) RegionFor(state string) (region string, ok bool) {
	region, ok = t.byState[state]
	return region, ok
}

// Assign fills the Region field on each scored hospital in place and
// returns the same slice for chaining.
func (t *Taxonomy) Assign(hospitals []ScoredHospital) []ScoredHospital {
	for i := range hospitals {
		if region, ok := t.RegionFor(hospitals[i].State); ok {
			hospitals[i].Region = region
		}
	}
	return hospitals
}

// RegionFor looks a state up in the default taxonomy.
func RegionFor(state string) (region string, ok bool) {
	return defaultTaxonomy.RegionFor(state)
}

// AssignRegions fills Region fields from the default taxonomy.
func AssignRegions(hospitals []ScoredHospital) []ScoredHospital {
	return defaultTaxonomy.Assign(hospitals)
}
