package finding

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/pkg/errors"
)

type service struct {
	findingRepository core.FindingRepository
	assetRepository   core.AssetRepository
}

func NewService(findingRepository core.FindingRepository, assetRepository core.AssetRepository) *service {
	return &service{
		findingRepository: findingRepository,
		assetRepository:   assetRepository,
	}
}

var ErrJustificationRequired = fmt.Errorf("accepting a finding or marking it as false positive requires a justification")

// Triage applies a triage decision and recalculates the asset's risk
// score from its remaining open findings.
func (s *service) Triage(findingID uuid.UUID, state models.FindingState, justification string) (models.Finding, error) {
	if (state == models.FindingStateAccepted || state == models.FindingStateFalsePositive) && justification == "" {
		return models.Finding{}, ErrJustificationRequired
	}

	finding, err := s.findingRepository.Read(findingID)
	if err != nil {
		return models.Finding{}, errors.Wrap(err, "could not read finding")
	}

	finding.State = state
	finding.Justification = justification
	if state == models.FindingStateOpen {
		finding.Justification = ""
	}

	if err := s.findingRepository.Save(nil, &finding); err != nil {
		return models.Finding{}, errors.Wrap(err, "could not save triage decision")
	}

	if err := s.recalculateAssetRisk(finding.AssetID); err != nil {
		return finding, errors.Wrap(err, "could not recalculate asset risk")
	}

	return finding, nil
}

var severityWeights = map[models.FindingSeverity]float64{
	models.SeverityCritical: 10,
	models.SeverityHigh:     7.5,
	models.SeverityMedium:   5,
	models.SeverityLow:      2.5,
	models.SeverityInfo:     0.5,
}

// recalculateAssetRisk derives the asset risk score from its open
// findings: the highest severity dominates, additional findings nudge
// the score upwards, capped at 10.
func (s *service) recalculateAssetRisk(assetID uuid.UUID) error {
	asset, err := s.assetRepository.Read(assetID)
	if err != nil {
		return err
	}

	findings, err := s.findingRepository.GetByAssetID(assetID)
	if err != nil {
		return err
	}

	score := 0.0
	for _, finding := range findings {
		if finding.State != models.FindingStateOpen {
			continue
		}
		weight := severityWeights[finding.Severity]
		if weight > score {
			score = weight
		} else {
			score += weight / 10
		}
	}
	if score > 10 {
		score = 10
	}

	asset.RiskScore = score
	return s.assetRepository.Save(nil, &asset)
}
