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
	"os"

	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/core/pipeline"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/l3montree-dev/exposuremap/internal/database/repositories"
	"github.com/l3montree-dev/exposuremap/internal/utils"
	"github.com/spf13/cobra"
)

func NewPipelineCommand() *cobra.Command {
	pipelineCmd := cobra.Command{
		Use:   "pipeline",
		Short: "Inspect pipelines",
	}

	pipelineCmd.AddCommand(newPipelineValidateCommand())
	return &pipelineCmd
}

func newPipelineValidateCommand() *cobra.Command {
	validate := cobra.Command{
		Use:   "validate <pipelineSlug>",
		Short: "Check a pipeline for duplicate step keys, dangling dependencies and cycles",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			core.LoadConfig() // nolint
			db, err := core.DatabaseFactory()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				os.Exit(1)
			}

			pipelineRepository := repositories.NewPipelineRepository(db)
			p, err := pipelineRepository.ReadBySlug(args[0])
			if err != nil {
				slog.Error("could not find pipeline", "slug", args[0], "err", err)
				os.Exit(1)
			}
			p, err = pipelineRepository.ReadWithSteps(p.ID)
			if err != nil {
				slog.Error("could not load pipeline steps", "err", err)
				os.Exit(1)
			}

			ok := true
			if err := pipeline.ValidateUniqueStepKeys(p.Steps); err != nil {
				slog.Error("step key validation failed", "err", err)
				ok = false
			}

			keys := utils.Map(p.Steps, func(step models.PipelineStep) string {
				return step.StepKey
			})
			for _, step := range p.Steps {
				for _, dependency := range step.DependsOn {
					if !utils.Contains(keys, dependency) {
						slog.Warn("dangling dependency", "step", step.StepKey, "dependsOn", dependency)
					}
				}
			}

			for _, key := range cyclicStepKeys(p.Steps) {
				slog.Error("step participates in a cycle", "step", key)
				ok = false
			}

			if !ok {
				os.Exit(1)
			}
			slog.Info("pipeline is valid", "slug", p.Slug, "steps", len(p.Steps))
		},
	}

	return &validate
}

// cyclicStepKeys returns the keys of all steps that were never drained
// by a Kahn ordering, i.e. the ones inside or behind a dependency
// cycle.
func cyclicStepKeys(steps []models.PipelineStep) []string {
	known := make(map[string]bool, len(steps))
	for _, step := range steps {
		known[step.StepKey] = true
	}

	inDegree := make(map[string]int, len(steps))
	dependents := make(map[string][]string, len(steps))
	for _, step := range steps {
		for _, dependency := range step.DependsOn {
			if !known[dependency] {
				continue
			}
			inDegree[step.StepKey]++
			dependents[dependency] = append(dependents[dependency], step.StepKey)
		}
	}

	queue := make([]string, 0, len(steps))
	for _, step := range steps {
		if inDegree[step.StepKey] == 0 {
			queue = append(queue, step.StepKey)
		}
	}

	drained := make(map[string]bool, len(steps))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		drained[current] = true
		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	var cyclic []string
	for _, step := range steps {
		if !drained[step.StepKey] {
			cyclic = append(cyclic, step.StepKey)
		}
	}
	return cyclic
}
