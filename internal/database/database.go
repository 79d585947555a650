package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gutenberg-app/gutenberg/internal/entities"
)

// defaultStatuses is the lookup set of valid book statuses. Seeded once at
// startup; the API never creates statuses.
var defaultStatuses = []entities.BookStatus{
	{Name: "to-read"},
	{Name: "reading"},
	{Name: "finished"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	// Foreign keys back the matrix cascade; the mattn driver leaves them off
	// unless asked.
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.RegistrationKey{},
		&entities.Book{},
		&entities.ReadingList{},
		&entities.BookStatus{},
		&entities.ReadingListEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedStatuses(); err != nil {
		return nil, fmt.Errorf("failed to seed book statuses: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedStatuses() error {
	for _, status := range defaultStatuses {
		var existing entities.BookStatus
		result := d.DB.Where("name = ?", status.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&status).Error; err != nil {
				return fmt.Errorf("failed to create status %s: %w", status.Name, err)
			}
		}
	}
	return nil
}

// GetStatusByName looks up a seeded status by its name.
func (d *Database) GetStatusByName(name string) (*entities.BookStatus, error) {
	var status entities.BookStatus
	err := d.DB.Where("name = ?", name).First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// GetAllStatuses returns the full status lookup set.
func (d *Database) GetAllStatuses() ([]entities.BookStatus, error) {
	var statuses []entities.BookStatus
	err := d.DB.Find(&statuses).Error
	return statuses, err
}
