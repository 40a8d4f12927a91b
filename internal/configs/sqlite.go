package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "staff-forge.com/staff-forge/internal/models"
)

func NewDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Position{},
		&model.Team{},
		&model.Worker{},
		&model.TaskType{},
		&model.Project{},
		&model.Task{},
		&model.TaskAssignment{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
