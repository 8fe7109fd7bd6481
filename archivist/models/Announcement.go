package models

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/subsets-io/mas-connector/pkg/errlvl"
	"gorm.io/gorm"
)

type AnnouncementDB struct {
	Conn *gorm.DB
}

func NewAnnouncementDB(db *gorm.DB) *AnnouncementDB {
	return &AnnouncementDB{Conn: db.Table("announcements")}
}

// Announcement is a stored MAS publication (media release, speech, policy statement).
type Announcement struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid;not null;" json:"id"`
	Hash         string    `gorm:"size:32;uniqueIndex;not null;" json:"hash"` // MD5 hash of URL + published date
	ProviderName string    `gorm:"size:64" json:"provider_name"`              // feed that carried the announcement
	Title        string    `gorm:"size:512" json:"title"`
	Description  string    `gorm:"size:1024" json:"description"`
	URL          string    `gorm:"size:512;uniqueIndex;not null;" json:"url"`
	IsSuspicious bool      `gorm:"default:false" json:"is_suspicious"` // contains flagged keywords
	PublishedAt  time.Time `gorm:"not null" json:"published_at"`       // publication date at the source
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

func (a *Announcement) Validate() error {
	if len(a.Hash) > 32 {
		return newError(errlvl.INFO, errHashTooLong, nil)
	}

	if len(a.ProviderName) > 64 {
		return newError(errlvl.INFO, errProviderNameTooLong, nil)
	}

	if a.URL == "" {
		return newError(errlvl.INFO, errURLEmpty, nil)
	}

	if len(a.URL) > 512 {
		return newError(errlvl.INFO, errURLTooLong, nil)
	}

	if len(a.Title) > 512 {
		return newError(errlvl.INFO, errTitleTooLong, nil)
	}

	if len(a.Description) > 1024 {
		return newError(errlvl.INFO, errDescTooLong, nil)
	}

	if a.PublishedAt.IsZero() {
		return newError(errlvl.INFO, errPublishedAtEmpty, nil)
	}

	return nil
}

// GenerateHash generates the hash of the announcement (URL + published date).
func (a *Announcement) GenerateHash() {
	h := md5.Sum([]byte(a.URL + a.PublishedAt.String()))
	a.Hash = hex.EncodeToString(h[:])
}

func (a *Announcement) BeforeCreate(*gorm.DB) error {
	a.ID = uuid.New()

	if len(a.Hash) == 0 {
		a.GenerateHash()
	}

	if len(a.Description) > 1024 {
		a.Description = a.Description[:1024]
	}

	if err := a.Validate(); err != nil {
		return newError(errlvl.INFO, errValidation, err)
	}

	return nil
}

func (db *AnnouncementDB) Create(ctx context.Context, a []*Announcement) error {
	res := db.Conn.WithContext(ctx).Create(&a)
	if res.Error != nil {
		return newError(errlvl.ERROR, errCreation, res.Error)
	}

	return nil
}

// FindAllByHashes finds announcements by their hash (URL + published date).
func (db *AnnouncementDB) FindAllByHashes(ctx context.Context, hashes []string) ([]*Announcement, error) {
	var a []*Announcement
	res := db.Conn.WithContext(ctx).Where("hash IN ?", hashes).Find(&a)
	if res.Error != nil {
		return nil, newError(errlvl.ERROR, errFind, res.Error)
	}

	return a, nil
}

// FindAllSince finds all announcements published at the source after the given date.
func (db *AnnouncementDB) FindAllSince(ctx context.Context, since time.Time) ([]*Announcement, error) {
	var a []*Announcement
	res := db.Conn.WithContext(ctx).Where("published_at >= ?", since).Find(&a)
	if res.Error != nil {
		return nil, newError(errlvl.ERROR, errFind, res.Error)
	}

	return a, nil
}
