package archivist

import (
	"github.com/subsets-io/mas-connector/archivist/models"
	"gorm.io/gorm"
)

// Entities is a struct that contains all the entities that Archivist is responsible for.
type Entities struct {
	Datasets      *models.DatasetDB
	RatePoints    *models.RatePointDB
	Announcements *models.AnnouncementDB
	Runs          *models.IngestRunDB
}

// Archivist is responsible for storing and retrieving connector data from the database.
type Archivist struct {
	db       *gorm.DB
	Entities *Entities
}

// NewArchivist creates a new Archivist with provided DSN to connect to database.
//
// DSN is a string in the format of: "user=gorm password=gorm dbname=gorm port=9920 sslmode=disable"
func NewArchivist(dsn string) (*Archivist, error) {
	conn, err := connectToPG(dsn)
	if err != nil {
		return nil, newError(errFailedConnection, err)
	}

	// Migrate the schema automatically for now.
	// TODO: Add migration tool later.
	err = conn.AutoMigrate(
		&models.Dataset{},
		&models.RatePoint{},
		&models.Announcement{},
		&models.IngestRun{},
	)
	if err != nil {
		return nil, newError(errFailedMigration, err)
	}

	return &Archivist{
		db: conn,
		Entities: &Entities{
			Datasets:      models.NewDatasetDB(conn),
			RatePoints:    models.NewRatePointDB(conn),
			Announcements: models.NewAnnouncementDB(conn),
			Runs:          models.NewIngestRunDB(conn),
		},
	}, nil
}
