package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/subsets-io/mas-connector/pkg/errlvl"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DatasetDB struct {
	Conn *gorm.DB
}

func NewDatasetDB(db *gorm.DB) *DatasetDB {
	return &DatasetDB{Conn: db.Table("datasets")}
}

// Dataset is a catalog entry for one ingested dataset.
type Dataset struct {
	ID           uuid.UUID      `gorm:"primaryKey;type:uuid;not null;" json:"id"`
	Name         string         `gorm:"size:64;uniqueIndex;not null;" json:"name"` // local name, e.g. "exchange_rates_usd_daily"
	SourceID     string         `gorm:"size:64" json:"source_id"`                  // data.gov.sg dataset ID, empty for scraped sources
	Title        string         `gorm:"size:256" json:"title"`                     // human readable title from the source metadata
	Frequency    string         `gorm:"size:16" json:"frequency"`                  // daily, monthly, quarterly or annual
	RowCount     int64          `gorm:"default:0" json:"row_count"`                // rows fetched during the last sync
	Metadata     datatypes.JSON `gorm:"" json:"metadata"`                          // source metadata document, verbatim
	LastSyncedAt time.Time      `gorm:"default:null" json:"last_synced_at"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

func (d *Dataset) Validate() error {
	if d.Name == "" {
		return newError(errlvl.INFO, errNameEmpty, nil)
	}

	if len(d.Name) > 64 {
		return newError(errlvl.INFO, errNameTooLong, nil)
	}

	if len(d.SourceID) > 64 {
		return newError(errlvl.INFO, errSourceIDTooLong, nil)
	}

	if len(d.Title) > 256 {
		return newError(errlvl.INFO, errTitleTooLong, nil)
	}

	return nil
}

func (d *Dataset) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	if err := d.Validate(); err != nil {
		return newError(errlvl.INFO, errValidation, err)
	}

	return nil
}

// Upsert creates the dataset or updates its sync bookkeeping when the name exists.
func (db *DatasetDB) Upsert(ctx context.Context, d *Dataset) error {
	res := db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "frequency", "row_count", "metadata", "last_synced_at", "updated_at"}),
	}).Create(d)
	if res.Error != nil {
		return newError(errlvl.ERROR, errCreation, res.Error)
	}

	return nil
}

// FindByName finds a dataset by its local name.
func (db *DatasetDB) FindByName(ctx context.Context, name string) (*Dataset, error) {
	var d Dataset
	res := db.Conn.WithContext(ctx).Where("name = ?", name).First(&d)
	if res.Error != nil {
		return nil, newError(errlvl.ERROR, errFind, res.Error)
	}

	return &d, nil
}

// FindAll returns all catalogued datasets.
func (db *DatasetDB) FindAll(ctx context.Context) ([]*Dataset, error) {
	var d []*Dataset
	res := db.Conn.WithContext(ctx).Find(&d)
	if res.Error != nil {
		return nil, newError(errlvl.ERROR, errFind, res.Error)
	}

	return d, nil
}
