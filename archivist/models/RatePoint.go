package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/subsets-io/mas-connector/pkg/errlvl"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatePointDB struct {
	Conn *gorm.DB
}

func NewRatePointDB(db *gorm.DB) *RatePointDB {
	return &RatePointDB{Conn: db.Table("rate_points")}
}

// RatePoint is a single parsed observation of a rate series,
// e.g. the USD/SGD closing rate of one day.
type RatePoint struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;not null;" json:"id"`
	Series    string    `gorm:"size:64;uniqueIndex:idx_rate_points_series_date;not null;" json:"series"` // series name, e.g. "usd_sgd"
	Date      time.Time `gorm:"uniqueIndex:idx_rate_points_series_date;not null;" json:"date"`
	Value     float64   `gorm:"not null" json:"value"`
	Frequency string    `gorm:"size:16" json:"frequency"` // daily, monthly, quarterly or annual
	Source    string    `gorm:"size:64" json:"source"`    // dataset or page the observation came from
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

func (p *RatePoint) Validate() error {
	if p.Series == "" {
		return newError(errlvl.INFO, errSeriesEmpty, nil)
	}

	if len(p.Series) > 64 {
		return newError(errlvl.INFO, errSeriesTooLong, nil)
	}

	if p.Date.IsZero() {
		return newError(errlvl.INFO, errDateEmpty, nil)
	}

	return nil
}

func (p *RatePoint) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	if err := p.Validate(); err != nil {
		return newError(errlvl.INFO, errValidation, err)
	}

	return nil
}

// CreateBatch inserts observations, silently skipping (series, date) pairs that
// already exist. Re-ingesting a source is idempotent this way.
func (db *RatePointDB) CreateBatch(ctx context.Context, points []*RatePoint) error {
	if len(points) == 0 {
		return nil
	}

	res := db.Conn.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&points)
	if res.Error != nil {
		return newError(errlvl.ERROR, errCreation, res.Error)
	}

	return nil
}

// FindBySeries returns the observations of a series from the given date onwards, oldest first.
func (db *RatePointDB) FindBySeries(ctx context.Context, series string, from time.Time) ([]*RatePoint, error) {
	var p []*RatePoint
	res := db.Conn.WithContext(ctx).
		Where("series = ? AND date >= ?", series, from).
		Order("date ASC").
		Find(&p)
	if res.Error != nil {
		return nil, newError(errlvl.ERROR, errFind, res.Error)
	}

	return p, nil
}
