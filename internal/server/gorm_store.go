package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// The document lives in a single fixed row; every save upserts it.
const documentRowID = 1

// DocumentModel is the GORM row holding the composite document.
type DocumentModel struct {
	ID        int            `gorm:"primaryKey"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (DocumentModel) TableName() string { return "store_documents" }

// GormDocumentStore implements DocumentStore on Postgres via GORM.
type GormDocumentStore struct {
	db *gorm.DB
}

// NewGormDocumentStore opens the DB and runs auto-migrations.
func NewGormDocumentStore(dsn string) (*GormDocumentStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&DocumentModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormDocumentStore{db: db}, nil
}

func (s *GormDocumentStore) Load() (json.RawMessage, error) {
	var row DocumentModel
	err := s.db.First(&row, documentRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		doc := emptyDocument()
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gorm store: load: %w", err)
	}
	return json.RawMessage(row.Payload), nil
}

func (s *GormDocumentStore) Save(payload json.RawMessage) error {
	row := DocumentModel{ID: documentRowID, Payload: datatypes.JSON(payload)}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("gorm store: save: %w", err)
	}
	return nil
}
