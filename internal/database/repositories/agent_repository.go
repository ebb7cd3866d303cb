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

type agentRepository struct {
	db *gorm.DB
	database.Repository[uuid.UUID, models.Agent, *gorm.DB]
}

func NewAgentRepository(db *gorm.DB) *agentRepository {
	return &agentRepository{
		db:         db,
		Repository: database.NewGormRepository[uuid.UUID, models.Agent](db),
	}
}

func (r *agentRepository) GetAll() ([]models.Agent, error) {
	var agents []models.Agent
	err := r.db.Order("name ASC").Find(&agents).Error
	return agents, err
}

func (r *agentRepository) FindByCapability(capability string) ([]models.Agent, error) {
	var agents []models.Agent
	// capabilities is a jsonb array of strings
	err := r.db.Where("capabilities @> ?", `["`+capability+`"]`).Find(&agents).Error
	return agents, err
}
