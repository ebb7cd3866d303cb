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

package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
)

type AssetRepository interface {
	database.Repository[uuid.UUID, models.Asset, DB]
	ReadBySlug(slug string) (models.Asset, error)
	GetAll() ([]models.Asset, error)
	FindByKinds(kinds []models.AssetKind) ([]models.Asset, error)
}

type RelationshipRepository interface {
	database.Repository[uuid.UUID, models.AssetRelationship, DB]
	GetAll() ([]models.AssetRelationship, error)
	GetByAssetID(assetID uuid.UUID) ([]models.AssetRelationship, error)
	GetByType(relationshipType models.RelationshipType) ([]models.AssetRelationship, error)
}

type PipelineRepository interface {
	database.Repository[uuid.UUID, models.Pipeline, DB]
	ReadBySlug(slug string) (models.Pipeline, error)
	ReadWithSteps(id uuid.UUID) (models.Pipeline, error)
	GetAll() ([]models.Pipeline, error)
	SaveSteps(tx DB, steps []models.PipelineStep) error
	DeleteStep(tx DB, stepID uuid.UUID) error
}

type AgentRepository interface {
	database.Repository[uuid.UUID, models.Agent, DB]
	GetAll() ([]models.Agent, error)
	FindByCapability(capability string) ([]models.Agent, error)
}

type FindingRepository interface {
	database.Repository[uuid.UUID, models.Finding, DB]
	GetByAssetID(assetID uuid.UUID) ([]models.Finding, error)
	GetByState(state models.FindingState) ([]models.Finding, error)
	CountByAssetID() (map[uuid.UUID]int, error)
}

type SCMConnectionRepository interface {
	database.Repository[uuid.UUID, models.SCMConnection, DB]
	GetAll() ([]models.SCMConnection, error)
}

type SCMConnectionVerifier interface {
	Verify(ctx context.Context, connection models.SCMConnection) error
}
