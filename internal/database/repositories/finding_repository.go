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

type findingRepository struct {
	db *gorm.DB
	database.Repository[uuid.UUID, models.Finding, *gorm.DB]
}

func NewFindingRepository(db *gorm.DB) *findingRepository {
	return &findingRepository{
		db:         db,
		Repository: database.NewGormRepository[uuid.UUID, models.Finding](db),
	}
}

func (r *findingRepository) GetByAssetID(assetID uuid.UUID) ([]models.Finding, error) {
	var findings []models.Finding
	err := r.db.Where("asset_id = ?", assetID).Order("created_at DESC").Find(&findings).Error
	return findings, err
}

func (r *findingRepository) GetByState(state models.FindingState) ([]models.Finding, error) {
	var findings []models.Finding
	err := r.db.Where("state = ?", state).Order("created_at DESC").Find(&findings).Error
	return findings, err
}

func (r *findingRepository) CountByAssetID() (map[uuid.UUID]int, error) {
	var rows []struct {
		AssetID uuid.UUID
		Count   int
	}
	err := r.db.Model(&models.Finding{}).
		Select("asset_id, count(*) as count").
		Where("state = ?", models.FindingStateOpen).
		Group("asset_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.AssetID] = row.Count
	}
	return counts, nil
}
