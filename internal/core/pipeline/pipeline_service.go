package pipeline

import (
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

type service struct {
	pipelineRepository core.PipelineRepository
}

func NewService(pipelineRepository core.PipelineRepository) *service {
	return &service{
		pipelineRepository: pipelineRepository,
	}
}

// AddStep appends a step to the pipeline. The step key uniqueness
// invariant is enforced here - nothing downstream guards against
// duplicates.
func (s *service) AddStep(pipeline models.Pipeline, req createStepRequest) (models.PipelineStep, error) {
	step := req.toModel(pipeline.ID, len(pipeline.Steps))

	if err := ValidateUniqueStepKeys(append(pipeline.Steps, step)); err != nil {
		return models.PipelineStep{}, err
	}

	if err := s.pipelineRepository.SaveSteps(nil, []models.PipelineStep{step}); err != nil {
		return models.PipelineStep{}, errors.Wrap(err, "could not save step")
	}
	return step, nil
}

// Connect applies a drag-connect on the canvas and persists the
// resulting depends_on changes.
func (s *service) Connect(pipeline models.Pipeline, sourceKey, targetKey string) ([]models.PipelineStep, error) {
	steps := ConnectSteps(pipeline.Steps, sourceKey, targetKey)
	if err := s.pipelineRepository.SaveSteps(nil, steps); err != nil {
		return nil, errors.Wrap(err, "could not persist connection")
	}
	return steps, nil
}

// Disconnect removes an edge between two real steps and persists it.
func (s *service) Disconnect(pipeline models.Pipeline, sourceKey, targetKey string) ([]models.PipelineStep, error) {
	steps := DisconnectSteps(pipeline.Steps, sourceKey, targetKey)
	if err := s.pipelineRepository.SaveSteps(nil, steps); err != nil {
		return nil, errors.Wrap(err, "could not persist disconnection")
	}
	return steps, nil
}

// RemoveStep deletes a step, strips its key from every depends_on list
// and renumbers the remaining steps - all in one transaction.
func (s *service) RemoveStep(pipeline models.Pipeline, stepKey string) error {
	idx := indexOfKey(pipeline.Steps, stepKey)
	if idx < 0 {
		return nil
	}
	stepID := pipeline.Steps[idx].ID

	remaining := DeleteStep(pipeline.Steps, stepKey)

	return s.pipelineRepository.Transaction(func(tx core.DB) error {
		if err := s.pipelineRepository.DeleteStep(tx, stepID); err != nil {
			return errors.Wrap(err, "could not delete step")
		}
		return errors.Wrap(s.pipelineRepository.SaveSteps(tx, remaining), "could not renumber remaining steps")
	})
}

// RenameKey renames a step key with the full cascade and persists
// every touched step.
func (s *service) RenameKey(pipeline models.Pipeline, oldKey, newKey string) ([]models.PipelineStep, error) {
	steps := RenameStepKey(pipeline.Steps, oldKey, newKey)
	if err := s.pipelineRepository.SaveSteps(nil, steps); err != nil {
		return nil, errors.Wrap(err, "could not persist renamed step key")
	}
	return steps, nil
}

// SavePosition writes a dragged node position back onto the step.
// This is the only way a position is ever persisted - automatic layout
// results stay ephemeral.
func (s *service) SavePosition(pipeline models.Pipeline, stepKey string, position models.UIPosition) error {
	idx := indexOfKey(pipeline.Steps, stepKey)
	if idx < 0 {
		return nil
	}

	stored := datatypes.NewJSONType(position)
	pipeline.Steps[idx].UIPosition = &stored
	return errors.Wrap(s.pipelineRepository.SaveSteps(nil, []models.PipelineStep{pipeline.Steps[idx]}), "could not persist step position")
}

// Graph renders the canvas state: the steps, the derived edge set and
// a position per step. Steps a user dragged keep their stored position,
// everything else falls back to the automatic layout.
func (s *service) Graph(pipeline models.Pipeline) graphDTO {
	positions := CalculateAutoLayout(pipeline.Steps)
	for _, step := range pipeline.Steps {
		if step.UIPosition != nil {
			positions[step.ID] = step.UIPosition.Data()
		}
	}

	return graphDTO{
		Steps:     pipeline.Steps,
		Edges:     StepsToEdges(pipeline.Steps),
		Positions: positions,
	}
}
