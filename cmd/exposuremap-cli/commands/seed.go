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

package commands

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/l3montree-dev/exposuremap/internal/database/repositories"
	"github.com/spf13/cobra"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewSeedCommand returns a command which fills an empty database with a
// small demo environment: a handful of assets, the relationships
// between them and a scanning pipeline.
func NewSeedCommand() *cobra.Command {
	seed := cobra.Command{
		Use:   "seed",
		Short: "Seed demo assets, relationships and a pipeline",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			core.LoadConfig() // nolint
			db, err := core.DatabaseFactory()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			if err := db.Transaction(func(tx *gorm.DB) error {
				if err := seedAssets(tx); err != nil {
					return err
				}
				return seedPipeline(tx)
			}); err != nil {
				slog.Error("could not seed demo data", "err", err)
				return
			}

			slog.Info("demo data seeded")
		},
	}

	return &seed
}

func demoAsset(name string, kind models.AssetKind, riskScore float64, reachable bool) models.Asset {
	return models.Asset{
		Model:                 models.Model{ID: uuid.New()},
		Name:                  name,
		Slug:                  slug.Make(name),
		Kind:                  kind,
		RiskScore:             riskScore,
		ReachableFromInternet: reachable,
	}
}

func seedAssets(tx *gorm.DB) error {
	assetRepository := repositories.NewAssetRepository(tx)
	relationshipRepository := repositories.NewRelationshipRepository(tx)

	assets := []models.Asset{
		demoAsset("Customer Portal", models.AssetKindWebsite, 6.5, true),
		demoAsset("Billing API", models.AssetKindAPI, 4.0, true),
		demoAsset("Billing Service", models.AssetKindService, 3.0, false),
		demoAsset("Billing Database", models.AssetKindDatabase, 8.0, false),
		demoAsset("Keycloak", models.AssetKindService, 2.0, false),
	}
	if err := assetRepository.CreateBatch(tx, assets); err != nil {
		return err
	}

	rel := func(relationshipType models.RelationshipType, source, target models.Asset, weight int) models.AssetRelationship {
		return models.AssetRelationship{
			Type:            relationshipType,
			SourceAssetID:   source.ID,
			SourceAssetName: source.Name,
			SourceAssetKind: source.Kind,
			TargetAssetID:   target.ID,
			TargetAssetName: target.Name,
			TargetAssetKind: target.Kind,
			Confidence:      models.ConfidenceHigh,
			DiscoveryMethod: models.DiscoveryManual,
			ImpactWeight:    weight,
		}
	}

	portal, api, service, db, keycloak := assets[0], assets[1], assets[2], assets[3], assets[4]
	relationships := []models.AssetRelationship{
		rel(models.RelationshipDependsOn, portal, api, 8),
		rel(models.RelationshipDependsOn, api, service, 9),
		rel(models.RelationshipStoresDataIn, service, db, 10),
		rel(models.RelationshipAuthenticatesTo, portal, keycloak, 7),
		rel(models.RelationshipConnectsTo, service, keycloak, 4),
	}
	return relationshipRepository.CreateBatch(tx, relationships)
}

func seedPipeline(tx *gorm.DB) error {
	pipelineRepository := repositories.NewPipelineRepository(tx)

	demoPipeline := models.Pipeline{
		Name:        "Nightly Scan",
		Slug:        slug.Make("Nightly Scan"),
		Description: "Discovers assets and scans them for exposures",
	}
	if err := pipelineRepository.Create(tx, &demoPipeline); err != nil {
		return err
	}

	step := func(key, name string, order int, dependsOn ...string) models.PipelineStep {
		return models.PipelineStep{
			PipelineID: demoPipeline.ID,
			StepKey:    key,
			Name:       name,
			Order:      order,
			DependsOn:  datatypes.JSONSlice[string](dependsOn),
		}
	}

	steps := []models.PipelineStep{
		step("discover", "Asset discovery", 0),
		step("port-scan", "Port scan", 1, "discover"),
		step("web-scan", "Web scan", 2, "discover"),
		step("report", "Report", 3, "port-scan", "web-scan"),
	}
	return pipelineRepository.SaveSteps(tx, steps)
}
