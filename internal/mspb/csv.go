package mspb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column headers expected in the CMS provider-data export. Matching is
// case-insensitive so minor header churn between yearly exports does
// not break loading.
const (
	colFacilityID   = "facility id"
	colFacilityName = "facility name"
	colState        = "state"
	colScore        = "score"
)

// LoadCSV reads the CMS hospital spending dataset from path.
func LoadCSV(path string) ([]HospitalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadRecords parses hospital rows from r. The first row must be a
// header containing at least the facility ID, facility name, state,
// and score columns; column order is not significant.
func ReadRecords(r io.Reader) ([]HospitalRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // the export carries trailing footnote columns on some rows

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []HospitalRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line++

		rec, err := idx.record(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// columnIndex maps the columns we care about to their positions in the
// header row.
type columnIndex struct {
	facilityID   int
	facilityName int
	state        int
	score        int
}

func resolveColumns(header []string) (columnIndex, error) {
	idx := columnIndex{facilityID: -1, facilityName: -1, state: -1, score: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case colFacilityID:
			idx.facilityID = i
		case colFacilityName:
			idx.facilityName = i
		case colState:
			idx.state = i
		case colScore:
			idx.score = i
		}
	}

	missing := func(col string, pos int) error {
		if pos < 0 {
			return fmt.Errorf("dataset is missing required column %q", col)
		}
		return nil
	}
	for _, check := range []struct {
		col string
		pos int
	}{
		{colFacilityID, idx.facilityID},
		{colFacilityName, idx.facilityName},
		{colState, idx.state},
		{colScore, idx.score},
	} {
		if err := missing(check.col, check.pos); err != nil {
			return columnIndex{}, err
		}
	}
	return idx, nil
}

func (idx columnIndex) record(row []string) (HospitalRecord, error) {
	max := idx.facilityID
	for _, i := range []int{idx.facilityName, idx.state, idx.score} {
		if i > max {
			max = i
		}
	}
	if len(row) <= max {
		return HospitalRecord{}, fmt.Errorf("row has %d fields, need at least %d", len(row), max+1)
	}

	return HospitalRecord{
		FacilityID:   strings.TrimSpace(row[idx.facilityID]),
		FacilityName: strings.TrimSpace(row[idx.facilityName]),
		State:        strings.ToUpper(strings.TrimSpace(row[idx.state])),
		Score:        strings.TrimSpace(row[idx.score]),
	}, nil
}
