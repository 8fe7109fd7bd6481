package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/subsets-io/mas-connector/pkg/errlvl"
	"gorm.io/gorm"
)

type IngestRunDB struct {
	Conn *gorm.DB
}

func NewIngestRunDB(db *gorm.DB) *IngestRunDB {
	return &IngestRunDB{Conn: db.Table("ingest_runs")}
}

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// IngestRun is the bookkeeping record of a single job execution.
type IngestRun struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid;not null;" json:"id"`
	JobName       string    `gorm:"size:64;index;not null;" json:"job_name"`
	Status        string    `gorm:"size:16;not null;" json:"status"`
	RowsFetched   int64     `gorm:"default:0" json:"rows_fetched"`
	AssetsWritten int       `gorm:"default:0" json:"assets_written"`
	Error         string    `gorm:"size:1024" json:"error"`
	StartedAt     time.Time `gorm:"not null" json:"started_at"`
	FinishedAt    time.Time `gorm:"default:null" json:"finished_at"`
}

func (r *IngestRun) Validate() error {
	if r.JobName == "" {
		return newError(errlvl.INFO, errJobNameEmpty, nil)
	}

	switch r.Status {
	case RunStatusRunning, RunStatusCompleted, RunStatusFailed:
	default:
		return newError(errlvl.INFO, errUnknownStatus, nil)
	}

	return nil
}

func (r *IngestRun) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}

	if len(r.Error) > 1024 {
		r.Error = r.Error[:1024]
	}

	if err := r.Validate(); err != nil {
		return newError(errlvl.INFO, errValidation, err)
	}

	return nil
}

func (db *IngestRunDB) Create(ctx context.Context, r *IngestRun) error {
	res := db.Conn.WithContext(ctx).Create(r)
	if res.Error != nil {
		return newError(errlvl.ERROR, errCreation, res.Error)
	}

	return nil
}

// Update persists the final state of a run.
func (db *IngestRunDB) Update(ctx context.Context, r *IngestRun) error {
	res := db.Conn.WithContext(ctx).Where("id = ?", r.ID).Updates(r)
	if res.Error != nil {
		return newError(errlvl.ERROR, errUpdate, res.Error)
	}

	return nil
}

// FindRecent returns the runs started after the given time, newest first.
func (db *IngestRunDB) FindRecent(ctx context.Context, since time.Time) ([]*IngestRun, error) {
	var r []*IngestRun
	res := db.Conn.WithContext(ctx).
		Where("started_at >= ?", since).
		Order("started_at DESC").
		Find(&r)
	if res.Error != nil {
		return nil, newError(errlvl.ERROR, errFind, res.Error)
	}

	return r, nil
}
