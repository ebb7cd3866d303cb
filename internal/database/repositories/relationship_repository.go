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

type relationshipRepository struct {
	db *gorm.DB
	database.Repository[uuid.UUID, models.AssetRelationship, *gorm.DB]
}

func NewRelationshipRepository(db *gorm.DB) *relationshipRepository {
	return &relationshipRepository{
		db:         db,
		Repository: database.NewGormRepository[uuid.UUID, models.AssetRelationship](db),
	}
}

func (r *relationshipRepository) GetAll() ([]models.AssetRelationship, error) {
	var rels []models.AssetRelationship
	err := r.db.Order("created_at ASC").Find(&rels).Error
	return rels, err
}

func (r *relationshipRepository) GetByAssetID(assetID uuid.UUID) ([]models.AssetRelationship, error) {
	var rels []models.AssetRelationship
	err := r.db.Where("source_asset_id = ? OR target_asset_id = ?", assetID, assetID).Order("created_at ASC").Find(&rels).Error
	return rels, err
}

func (r *relationshipRepository) GetByType(relationshipType models.RelationshipType) ([]models.AssetRelationship, error) {
	var rels []models.AssetRelationship
	err := r.db.Where("type = ?", relationshipType).Find(&rels).Error
	return rels, err
}
