package datastore

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
	"github.com/fluwatch/fluwatch-go/internal/errors"
	"github.com/fluwatch/fluwatch-go/internal/thermal"
)

// newTestStore opens an isolated in-memory SQLite database with the schema
// migrated.
func newTestStore(t *testing.T) *DataStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Each pooled connection would otherwise get its own memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Record{}))

	return &DataStore{DB: db}
}

func testRecord(verdict diagnosis.Verdict) *Record {
	return &Record{
		ChickenLabel:       "Chicken-7",
		HeadTemp:           thermal.Float(41.0),
		BodyMean:           thermal.Float(38.5),
		LegTemp:            thermal.Float(39.0),
		Verdict:            verdict,
		ObservedSigns:      JSONStrings{"Head Temperature: 41.00 °C"},
		Interpretation:     "Thermal readings are within normal ranges.",
		RecommendedActions: JSONStrings{"Continue routine observation of the bird."},
	}
}

func TestSaveAndGet(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	record := testRecord(diagnosis.Healthy)
	require.NoError(t, ds.Save(record))
	require.NotEmpty(t, record.ID)

	// IDs are assigned on save as UUIDs
	_, err := uuid.Parse(record.ID)
	require.NoError(t, err)

	got, err := ds.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicken-7", got.ChickenLabel)
	assert.Equal(t, diagnosis.Healthy, got.Verdict)
	assert.Equal(t, JSONStrings{"Head Temperature: 41.00 °C"}, got.ObservedSigns)
	require.NotNil(t, got.HeadTemp)
	assert.InDelta(t, 41.0, *got.HeadTemp, 0.001)
}

func TestSaveRejectsDetectionFailed(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	err := ds.Save(testRecord(diagnosis.DetectionFailed))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestSaveRejectsInconsistentBodyRange(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	record := testRecord(diagnosis.Healthy)
	record.BodyMin = thermal.Float(40.0)
	record.BodyMean = thermal.Float(38.0)
	record.BodyMax = thermal.Float(36.0)

	err := ds.Save(record)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	// Nothing was persisted
	records, err := ds.GetAllRecords()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveDefaultsChickenLabel(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	record := testRecord(diagnosis.Healthy)
	record.ChickenLabel = ""
	require.NoError(t, ds.Save(record))

	got, err := ds.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", got.ChickenLabel)
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	_, err := ds.Get(uuid.NewString())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	// Non-UUID identifiers behave like missing records
	_, err = ds.Get("not-an-id")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	record := testRecord(diagnosis.FeverOnly)
	require.NoError(t, ds.Save(record))

	deleted, err := ds.Delete(record.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting again reports nothing was removed
	deleted, err = ds.Delete(record.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetAllRecordsOrder(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	now := time.Now()
	for i := 0; i < 3; i++ {
		record := testRecord(diagnosis.Healthy)
		record.ChickenLabel = fmt.Sprintf("bird-%d", i)
		record.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, ds.Save(record))
	}

	records, err := ds.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "bird-2", records[0].ChickenLabel)
	assert.Equal(t, "bird-0", records[2].ChickenLabel)
}

func TestGetRecordsByVerdict(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	require.NoError(t, ds.Save(testRecord(diagnosis.Healthy)))
	require.NoError(t, ds.Save(testRecord(diagnosis.SuspectedBirdFlu)))
	require.NoError(t, ds.Save(testRecord(diagnosis.Healthy)))

	records, err := ds.GetRecordsByVerdict(diagnosis.SuspectedBirdFlu)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, diagnosis.SuspectedBirdFlu, records[0].Verdict)
}

func TestCountByVerdict(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	require.NoError(t, ds.Save(testRecord(diagnosis.Healthy)))
	require.NoError(t, ds.Save(testRecord(diagnosis.Healthy)))
	require.NoError(t, ds.Save(testRecord(diagnosis.SuspectedBirdFlu)))

	counts, err := ds.CountByVerdict()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[diagnosis.Healthy])
	assert.Equal(t, int64(1), counts[diagnosis.SuspectedBirdFlu])
	assert.Zero(t, counts[diagnosis.FeverOnly])
}

func TestUpdateNotes(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	record := testRecord(diagnosis.Healthy)
	require.NoError(t, ds.Save(record))

	updated, err := ds.UpdateNotes(record.ID, "isolated for observation")
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := ds.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "isolated for observation", got.Notes)

	updated, err = ds.UpdateNotes("99999", "nope")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestJSONStringsRoundTrip(t *testing.T) {
	t.Parallel()

	ds := newTestStore(t)

	record := testRecord(diagnosis.SuspectedBirdFlu)
	record.RecommendedActions = JSONStrings{
		"IMMEDIATE ISOLATION: Separate the bird from the flock to prevent disease spread.",
		"VETERINARY EMERGENCY: Contact an avian veterinarian immediately for confirmatory testing.",
	}
	require.NoError(t, ds.Save(record))

	got, err := ds.Get(record.ID)
	require.NoError(t, err)
	require.Len(t, got.RecommendedActions, 2)
	assert.Contains(t, got.RecommendedActions[0], "IMMEDIATE ISOLATION")
}
