// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package repositories

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"gorm.io/gorm"
)

type pipelineRepository struct {
	db *gorm.DB
	database.Repository[uuid.UUID, models.Pipeline, *gorm.DB]
}

func NewPipelineRepository(db *gorm.DB) *pipelineRepository {
	return &pipelineRepository{
		db:         db,
		Repository: database.NewGormRepository[uuid.UUID, models.Pipeline](db),
	}
}

func (r *pipelineRepository) ReadBySlug(slug string) (models.Pipeline, error) {
	var pipeline models.Pipeline
	err := r.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_order ASC")
	}).Where("slug = ?", slug).First(&pipeline).Error
	return pipeline, err
}

func (r *pipelineRepository) ReadWithSteps(id uuid.UUID) (models.Pipeline, error) {
	var pipeline models.Pipeline
	err := r.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_order ASC")
	}).First(&pipeline, id).Error
	return pipeline, err
}

func (r *pipelineRepository) GetAll() ([]models.Pipeline, error) {
	var pipelines []models.Pipeline
	err := r.db.Order("created_at ASC").Find(&pipelines).Error
	return pipelines, err
}

func (r *pipelineRepository) SaveSteps(tx *gorm.DB, steps []models.PipelineStep) error {
	if len(steps) == 0 {
		return nil
	}
	return r.GetDB(tx).Save(steps).Error
}

func (r *pipelineRepository) DeleteStep(tx *gorm.DB, stepID uuid.UUID) error {
	return r.GetDB(tx).Delete(&models.PipelineStep{}, stepID).Error
}
