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

type assetRepository struct {
	db *gorm.DB
	database.Repository[uuid.UUID, models.Asset, *gorm.DB]
}

func NewAssetRepository(db *gorm.DB) *assetRepository {
	return &assetRepository{
		db:         db,
		Repository: database.NewGormRepository[uuid.UUID, models.Asset](db),
	}
}

func (r *assetRepository) ReadBySlug(slug string) (models.Asset, error) {
	var asset models.Asset
	err := r.db.Where("slug = ?", slug).First(&asset).Error
	return asset, err
}

func (r *assetRepository) GetAll() ([]models.Asset, error) {
	var assets []models.Asset
	err := r.db.Order("created_at ASC").Find(&assets).Error
	return assets, err
}

func (r *assetRepository) FindByKinds(kinds []models.AssetKind) ([]models.Asset, error) {
	var assets []models.Asset
	err := r.db.Where("kind IN ?", kinds).Find(&assets).Error
	return assets, err
}
