package db

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { db.Close() })
	return db
}

func testRun(runID string) *ReportRun {
	chart := "out/2023MSPBReport_states.html"
	return &ReportRun{
		RunID:             runID,
		SourceFile:        "testdata/mspb.csv",
		PDFPath:           "out/2023MSPBReport.pdf",
		MapPath:           "out/2023MSPBReport_map.png",
		ChartPath:         &chart,
		TotalHospitals:    4500,
		ScoredHospitals:   3000,
		UnscoredHospitals: 1500,
		States:            51,
	}
}

func TestRecordAndGetReportRun(t *testing.T) {
	db := newTestDB(t)

	runID := uuid.New().String()
	run := testRun(runID)
	require.NoError(t, db.RecordReportRun(run))
	assert.NotZero(t, run.ID, "insert should fill the row ID")

	got, err := db.GetReportRun(runID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, runID, got.RunID)
	assert.Equal(t, "testdata/mspb.csv", got.SourceFile)
	assert.Equal(t, 4500, got.TotalHospitals)
	assert.Equal(t, 3000, got.ScoredHospitals)
	assert.Equal(t, 1500, got.UnscoredHospitals)
	assert.Equal(t, 51, got.States)
	require.NotNil(t, got.ChartPath)
	assert.Equal(t, "out/2023MSPBReport_states.html", *got.ChartPath)
	assert.False(t, got.CreatedAt.IsZero(), "created_at should be set by the database")
}

func TestRecordReportRunNilChart(t *testing.T) {
	db := newTestDB(t)

	runID := uuid.New().String()
	run := testRun(runID)
	run.ChartPath = nil
	require.NoError(t, db.RecordReportRun(run))

	got, err := db.GetReportRun(runID)
	require.NoError(t, err)
	assert.Nil(t, got.ChartPath)
}

func TestGetReportRunNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetReportRun("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRecentReportRuns(t *testing.T) {
	db := newTestDB(t)

	ids := make([]string, 5)
	for i := range ids {
		ids[i] = uuid.New().String()
		require.NoError(t, db.RecordReportRun(testRun(ids[i])))
	}

	runs, err := db.RecentReportRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	// Newest first; created_at ties broken on row ID.
	assert.Equal(t, ids[4], runs[0].RunID)
	assert.Equal(t, ids[3], runs[1].RunID)
	assert.Equal(t, ids[2], runs[2].RunID)
}

func TestDeleteReportRun(t *testing.T) {
	db := newTestDB(t)

	runID := uuid.New().String()
	require.NoError(t, db.RecordReportRun(testRun(runID)))
	require.NoError(t, db.DeleteReportRun(runID))

	_, err := db.GetReportRun(runID)
	assert.Error(t, err)

	err = db.DeleteReportRun(runID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMigrateVersion(t *testing.T) {
	db := newTestDB(t)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}
