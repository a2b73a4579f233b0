// Package datastore persists thermal health analysis records behind a
// database-agnostic interface with SQLite and MySQL implementations.
package datastore

import (
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
	"github.com/fluwatch/fluwatch-go/internal/errors"
)

// Interface abstracts record storage. Implementations must be safe for
// concurrent use.
type Interface interface {
	Open() error
	Close() error
	Save(record *Record) error
	Get(id string) (Record, error)
	Delete(id string) (bool, error)
	GetAllRecords() ([]Record, error)
	GetRecordsByVerdict(verdict diagnosis.Verdict) ([]Record, error)
	CountByVerdict() (map[diagnosis.Verdict]int64, error)
	UpdateNotes(id, notes string) (bool, error)
}

// DataStore implements the storage operations shared by all database
// backends. The embedding driver types supply Open and Close.
type DataStore struct {
	DB *gorm.DB

	// mu serializes mutating operations. SQLite in particular tolerates
	// only one writer at a time.
	mu sync.Mutex
}

// Save validates and inserts a record. Records for failed analyses are
// rejected, callers must filter them out before persisting.
func (ds *DataStore) Save(record *Record) error {
	if ds.DB == nil {
		return notInitialized()
	}
	if record == nil {
		return errors.Newf("record is nil").
			Component("datastore").
			Category(errors.CategoryValidation).
			Build()
	}
	if !record.Verdict.Actionable() {
		return errors.Newf("refusing to save record with verdict %q", record.Verdict).
			Component("datastore").
			Category(errors.CategoryValidation).
			Build()
	}
	// Every caller goes through this gate, not just the HTTP handler.
	if err := record.Readings().Validate(); err != nil {
		return err
	}
	if record.ChickenLabel == "" {
		record.ChickenLabel = "Unknown"
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.DB.Create(record).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "save_record").
			Build()
	}
	return nil
}

// Get returns the record with the given ID.
func (ds *DataStore) Get(id string) (Record, error) {
	if ds.DB == nil {
		return Record{}, notInitialized()
	}

	var record Record
	if err := ds.DB.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, errors.Newf("record %s not found", id).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Build()
		}
		return Record{}, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "get_record").
			Build()
	}
	return record, nil
}

// Delete removes the record with the given ID. The boolean reports whether
// a record was actually deleted, so callers can distinguish a missing ID
// from a storage failure.
func (ds *DataStore) Delete(id string) (bool, error) {
	if ds.DB == nil {
		return false, notInitialized()
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	result := ds.DB.Delete(&Record{}, "id = ?", id)
	if result.Error != nil {
		return false, errors.New(result.Error).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "delete_record").
			Build()
	}
	return result.RowsAffected > 0, nil
}

// GetAllRecords returns every record, most recent first. Records created at
// the same instant are tie-broken on ID so the order stays deterministic.
func (ds *DataStore) GetAllRecords() ([]Record, error) {
	if ds.DB == nil {
		return nil, notInitialized()
	}

	var records []Record
	if err := ds.DB.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "get_all_records").
			Build()
	}
	return records, nil
}

// GetRecordsByVerdict returns records with the given verdict, most recent
// first.
func (ds *DataStore) GetRecordsByVerdict(verdict diagnosis.Verdict) ([]Record, error) {
	if ds.DB == nil {
		return nil, notInitialized()
	}

	var records []Record
	err := ds.DB.Where("verdict = ?", verdict.String()).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "get_records_by_verdict").
			Build()
	}
	return records, nil
}

// CountByVerdict returns the number of stored records per verdict.
func (ds *DataStore) CountByVerdict() (map[diagnosis.Verdict]int64, error) {
	if ds.DB == nil {
		return nil, notInitialized()
	}

	var rows []struct {
		Verdict string
		Count   int64
	}
	err := ds.DB.Model(&Record{}).
		Select("verdict, COUNT(*) as count").
		Group("verdict").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "count_by_verdict").
			Build()
	}

	counts := make(map[diagnosis.Verdict]int64, len(rows))
	for _, row := range rows {
		verdict, err := diagnosis.ParseVerdict(row.Verdict)
		if err != nil {
			continue
		}
		counts[verdict] = row.Count
	}
	return counts, nil
}

// UpdateNotes replaces the operator notes on a record. The boolean reports
// whether the record existed.
func (ds *DataStore) UpdateNotes(id, notes string) (bool, error) {
	if ds.DB == nil {
		return false, notInitialized()
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	result := ds.DB.Model(&Record{}).Where("id = ?", id).Update("notes", notes)
	if result.Error != nil {
		return false, errors.New(result.Error).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "update_notes").
			Build()
	}
	return result.RowsAffected > 0, nil
}

func notInitialized() error {
	return errors.Newf("database connection is not initialized").
		Component("datastore").
		Category(errors.CategoryDatabase).
		Build()
}
