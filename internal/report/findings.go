package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mspb-data/spending.report/internal/mspb"
)

// Findings derives the report's bullet points from the aggregates so
// the prose always matches the data in the figures.
func Findings(year int, clean mspb.CleanResult, medians []mspb.StateMedian, rows []mspb.RegionRow) []string {
	bands := mspb.CountScoreBands(medians)

	bullets := []string{
		fmt.Sprintf(
			"In %d, %s hospitals across the U.S. received Medicare patients. Of these, %s hospitals from %d different states reported MSPB scores. %d states had a median MSPB score of 1.0, while %d states' median scores were above 1.0, and %d states' median scores were below 1.0.",
			year,
			formatCount(clean.TotalHospitals),
			formatCount(len(clean.Scored)),
			len(medians),
			bands.At, bands.Above, bands.Below,
		),
	}

	if bullet := regionalBullet(rows); bullet != "" {
		bullets = append(bullets, bullet)
	}

	if len(clean.Unscored) > 0 {
		bullets = append(bullets, fmt.Sprintf(
			"Of the %s hospitals, %s did not report an MSPB score. This may be because the hospitals did not meet the minimum number of beneficiary episodes (25), they had a significant number of episodes that are excluded for specific reasons, or the hospitals opted out of the Medicare program entirely.",
			formatCount(clean.TotalHospitals),
			formatCount(len(clean.Unscored)),
		))
	}

	return bullets
}

func regionalBullet(rows []mspb.RegionRow) string {
	type regionCount struct {
		region string
		count  int
	}

	var counts []regionCount
	var lowest, highest *mspb.RegionRow
	for i := range rows {
		row := rows[i]
		if row.IsTotal {
			continue
		}
		counts = append(counts, regionCount{region: row.Region, count: row.TotalHospitals})
		if !row.HasMedian {
			continue
		}
		if lowest == nil || row.Median < lowest.Median {
			lowest = &rows[i]
		}
		if highest == nil || row.Median > highest.Median {
			highest = &rows[i]
		}
	}
	if len(counts) == 0 {
		return ""
	}

	// Largest regions first; name the top three.
	for i := 0; i < len(counts); i++ {
		for j := i + 1; j < len(counts); j++ {
			if counts[j].count > counts[i].count {
				counts[i], counts[j] = counts[j], counts[i]
			}
		}
	}
	top := counts
	if len(top) > 3 {
		top = top[:3]
	}
	parts := make([]string, 0, len(top))
	for _, c := range top {
		parts = append(parts, fmt.Sprintf("the %s (%s)", strings.ToLower(c.region), formatCount(c.count)))
	}

	bullet := fmt.Sprintf("These hospitals are located in all regions of the U.S., with the most concentrated in %s.", joinWithAnd(parts))
	if lowest != nil && highest != nil && lowest.Region != highest.Region {
		bullet += fmt.Sprintf(
			" The %s had the lowest median MSPB score (%.2f), while the %s had the greatest (%.2f).",
			strings.ToLower(lowest.Region), lowest.Median,
			strings.ToLower(highest.Region), highest.Median,
		)
	}
	return bullet
}

func joinWithAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
