package database

import (
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date with the model structs.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Asset{},
		&models.AssetRelationship{},
		&models.Pipeline{},
		&models.PipelineStep{},
		&models.Agent{},
		&models.Finding{},
		&models.SCMConnection{},
	)
}
