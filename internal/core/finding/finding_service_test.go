package finding

import (
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type findingRepositoryStub struct {
	core.FindingRepository
	findings map[uuid.UUID]models.Finding
}

func (s *findingRepositoryStub) Read(id uuid.UUID) (models.Finding, error) {
	finding, ok := s.findings[id]
	if !ok {
		return models.Finding{}, gorm.ErrRecordNotFound
	}
	return finding, nil
}

func (s *findingRepositoryStub) Save(tx core.DB, finding *models.Finding) error {
	s.findings[finding.ID] = *finding
	return nil
}

func (s *findingRepositoryStub) GetByAssetID(assetID uuid.UUID) ([]models.Finding, error) {
	var matching []models.Finding
	for _, finding := range s.findings {
		if finding.AssetID == assetID {
			matching = append(matching, finding)
		}
	}
	return matching, nil
}

type assetRepositoryStub struct {
	core.AssetRepository
	assets map[uuid.UUID]models.Asset
}

func (s *assetRepositoryStub) Read(id uuid.UUID) (models.Asset, error) {
	asset, ok := s.assets[id]
	if !ok {
		return models.Asset{}, gorm.ErrRecordNotFound
	}
	return asset, nil
}

func (s *assetRepositoryStub) Save(tx core.DB, asset *models.Asset) error {
	s.assets[asset.ID] = *asset
	return nil
}

func newFixture(asset models.Asset, findings ...models.Finding) (*service, *findingRepositoryStub, *assetRepositoryStub) {
	findingRepository := &findingRepositoryStub{findings: map[uuid.UUID]models.Finding{}}
	for _, finding := range findings {
		findingRepository.findings[finding.ID] = finding
	}
	assetRepository := &assetRepositoryStub{assets: map[uuid.UUID]models.Asset{asset.ID: asset}}
	return NewService(findingRepository, assetRepository), findingRepository, assetRepository
}

func finding(assetID uuid.UUID, severity models.FindingSeverity, state models.FindingState) models.Finding {
	return models.Finding{
		Model:    models.Model{ID: uuid.New()},
		AssetID:  assetID,
		Severity: severity,
		State:    state,
	}
}

func TestTriage(t *testing.T) {
	asset := models.Asset{Model: models.Model{ID: uuid.New()}, Name: "billing-db"}

	t.Run("should require a justification when accepting", func(t *testing.T) {
		svc, _, _ := newFixture(asset)

		_, err := svc.Triage(uuid.New(), models.FindingStateAccepted, "")

		assert.ErrorIs(t, err, ErrJustificationRequired)
	})

	t.Run("should require a justification for false positives", func(t *testing.T) {
		svc, _, _ := newFixture(asset)

		_, err := svc.Triage(uuid.New(), models.FindingStateFalsePositive, "")

		assert.ErrorIs(t, err, ErrJustificationRequired)
	})

	t.Run("should persist the decision and justification", func(t *testing.T) {
		open := finding(asset.ID, models.SeverityHigh, models.FindingStateOpen)
		svc, findingRepository, _ := newFixture(asset, open)

		triaged, err := svc.Triage(open.ID, models.FindingStateAccepted, "mitigated by network policy")

		assert.NoError(t, err)
		assert.Equal(t, models.FindingStateAccepted, triaged.State)
		assert.Equal(t, "mitigated by network policy", findingRepository.findings[open.ID].Justification)
	})

	t.Run("should clear the justification when a finding is reopened", func(t *testing.T) {
		accepted := finding(asset.ID, models.SeverityHigh, models.FindingStateAccepted)
		accepted.Justification = "was accepted"
		svc, findingRepository, _ := newFixture(asset, accepted)

		_, err := svc.Triage(accepted.ID, models.FindingStateOpen, "")

		assert.NoError(t, err)
		assert.Empty(t, findingRepository.findings[accepted.ID].Justification)
	})
}

func TestRecalculateAssetRisk(t *testing.T) {
	t.Run("should let the highest open severity dominate", func(t *testing.T) {
		asset := models.Asset{Model: models.Model{ID: uuid.New()}}
		critical := finding(asset.ID, models.SeverityCritical, models.FindingStateOpen)
		low := finding(asset.ID, models.SeverityLow, models.FindingStateOpen)
		svc, _, assetRepository := newFixture(asset, critical, low)

		_, err := svc.Triage(low.ID, models.FindingStateOpen, "")

		assert.NoError(t, err)
		// 10 for the critical, capped - the low one cannot push past 10
		assert.Equal(t, 10.0, assetRepository.assets[asset.ID].RiskScore)
	})

	t.Run("should drop the risk score when the last open finding is accepted", func(t *testing.T) {
		asset := models.Asset{Model: models.Model{ID: uuid.New()}, RiskScore: 7.5}
		high := finding(asset.ID, models.SeverityHigh, models.FindingStateOpen)
		svc, _, assetRepository := newFixture(asset, high)

		_, err := svc.Triage(high.ID, models.FindingStateAccepted, "risk accepted by owner")

		assert.NoError(t, err)
		assert.Equal(t, 0.0, assetRepository.assets[asset.ID].RiskScore)
	})

	t.Run("should ignore findings that are not open", func(t *testing.T) {
		asset := models.Asset{Model: models.Model{ID: uuid.New()}}
		open := finding(asset.ID, models.SeverityMedium, models.FindingStateOpen)
		fixed := finding(asset.ID, models.SeverityCritical, models.FindingStateFixed)
		svc, _, assetRepository := newFixture(asset, open, fixed)

		_, err := svc.Triage(fixed.ID, models.FindingStateFixed, "")

		assert.NoError(t, err)
		assert.Equal(t, 5.0, assetRepository.assets[asset.ID].RiskScore)
	})
}
