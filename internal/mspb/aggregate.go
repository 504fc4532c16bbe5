package mspb

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// StateMedian holds the aggregate for one state.
type StateMedian struct {
	State     string
	Median    float64
	Hospitals int // hospitals with reported scores
}

// RegionRow is one row of the regional summary table.
type RegionRow struct {
	Region         string
	TotalHospitals int
	WithScores     int
	WithoutScores  int
	Median         float64
	HasMedian      bool // false on the Total row
	IsTotal        bool
}

// ScoreBands counts states by where their median sits relative to the
// national benchmark of 1.0.
type ScoreBands struct {
	Above int
	At    int
	Below int
}

// median returns the middle value of an odd-sized group and the mean
// of the two central values of an even-sized one.
func median(scores []float64) float64 {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return stat.Mean(sorted[n/2-1:n/2+1], nil)
}

// MediansByState groups scored hospitals by state and computes each
// state's median score. Results are sorted by median descending, state
// code ascending on ties.
func MediansByState(hospitals []ScoredHospital) []StateMedian {
	byState := make(map[string][]float64)
	for _, h := range hospitals {
		byState[h.State] = append(byState[h.State], h.Score)
	}

	medians := make([]StateMedian, 0, len(byState))
	for state, scores := range byState {
		medians = append(medians, StateMedian{
			State:     state,
			Median:    median(scores),
			Hospitals: len(scores),
		})
	}

	sort.Slice(medians, func(i, j int) bool {
		if medians[i].Median != medians[j].Median {
			return medians[i].Median > medians[j].Median
		}
		return medians[i].State < medians[j].State
	})

	return medians
}

// CountScoreBands buckets state medians against the 1.0 benchmark.
// Scores publish at two decimals, so group medians land either exactly
// on 1.0 or on a half-cent value that compares cleanly.
func CountScoreBands(medians []StateMedian) ScoreBands {
	var bands ScoreBands
	for _, m := range medians {
		switch {
		case m.Median > 1.0:
			bands.Above++
		case m.Median < 1.0:
			bands.Below++
		default:
			bands.At++
		}
	}
	return bands
}

// BuildRegionTable rolls hospitals up into regional rows using the
// default taxonomy.
func BuildRegionTable(scored []ScoredHospital, unscored []HospitalRecord) []RegionRow {
	return DefaultTaxonomy().RegionTable(scored, unscored)
}

// RegionTable rolls hospitals up into regional rows: total hospital
// count, counts with and without scores, and the median score over all
// scored hospitals in the region. Rows are sorted ascending by median
// and a Total row (no median) is appended.
func (t *Taxonomy) RegionTable(scored []ScoredHospital, unscored []HospitalRecord) []RegionRow {
	withScores := make(map[string]int)
	scoresByRegion := make(map[string][]float64)
	for _, h := range scored {
		region, ok := t.RegionFor(h.State)
		if !ok {
			continue
		}
		withScores[region]++
		scoresByRegion[region] = append(scoresByRegion[region], h.Score)
	}

	withoutScores := make(map[string]int)
	for _, h := range unscored {
		if region, ok := t.RegionFor(h.State); ok {
			withoutScores[region]++
		}
	}

	var rows []RegionRow
	var total RegionRow
	total.Region = "Total"
	total.IsTotal = true

	for _, region := range t.Names() {
		scores := scoresByRegion[region]
		if len(scores) == 0 && withoutScores[region] == 0 {
			continue
		}
		row := RegionRow{
			Region:         region,
			WithScores:     withScores[region],
			WithoutScores:  withoutScores[region],
			TotalHospitals: withScores[region] + withoutScores[region],
		}
		if len(scores) > 0 {
			row.Median = median(scores)
			row.HasMedian = true
		}
		rows = append(rows, row)

		total.WithScores += row.WithScores
		total.WithoutScores += row.WithoutScores
		total.TotalHospitals += row.TotalHospitals
	}

	sort.Slice(rows, func(i, j int) bool {
		// Regions without a median sink to the bottom, just above Total.
		if rows[i].HasMedian != rows[j].HasMedian {
			return rows[i].HasMedian
		}
		if rows[i].Median != rows[j].Median {
			return rows[i].Median < rows[j].Median
		}
		return rows[i].Region < rows[j].Region
	})

	return append(rows, total)
}

// MedianRange returns the smallest and largest region medians, used to
// normalise the table's colour gradient. ok is false when no row
// carries a median.
func MedianRange(rows []RegionRow) (min, max float64, ok bool) {
	for _, row := range rows {
		if !row.HasMedian {
			continue
		}
		if !ok {
			min, max, ok = row.Median, row.Median, true
			continue
		}
		if row.Median < min {
			min = row.Median
		}
		if row.Median > max {
			max = row.Median
		}
	}
	return min, max, ok
}

// StateMedianRange returns the smallest and largest state medians, used
// to normalise the map's colour gradient.
func StateMedianRange(medians []StateMedian) (min, max float64, ok bool) {
	for _, m := range medians {
		if !ok {
			min, max, ok = m.Median, m.Median, true
			continue
		}
		if m.Median < min {
			min = m.Median
		}
		if m.Median > max {
			max = m.Median
		}
	}
	return min, max, ok
}
