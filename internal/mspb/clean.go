package mspb

import (
	"fmt"
	"strconv"
)

// CleanResult partitions the raw dataset into hospitals with a numeric
// score and hospitals that reported no score.
type CleanResult struct {
	Scored   []ScoredHospital
	Unscored []HospitalRecord

	TotalHospitals int
	MissingScores  int // rows with an empty score cell (distinct from "Not Available")
}

// Clean converts raw hospital rows into typed records. Rows whose score
// is the NotAvailable literal (or empty) move to Unscored; every other
// score must parse as a float. A value that is neither is a data error,
// not something to silently drop.
func Clean(records []HospitalRecord) (CleanResult, error) {
	result := CleanResult{TotalHospitals: len(records)}

	for _, rec := range records {
		switch {
		case rec.Score == NotAvailable:
			result.Unscored = append(result.Unscored, rec)
		case rec.Score == "":
			result.MissingScores++
			result.Unscored = append(result.Unscored, rec)
		default:
			score, err := strconv.ParseFloat(rec.Score, 64)
			if err != nil {
				return CleanResult{}, fmt.Errorf("facility %s (%s): unparsable score %q", rec.FacilityID, rec.State, rec.Score)
			}
			result.Scored = append(result.Scored, ScoredHospital{
				FacilityID:   rec.FacilityID,
				FacilityName: rec.FacilityName,
				State:        rec.State,
				Score:        score,
			})
		}
	}

	return result, nil
}
