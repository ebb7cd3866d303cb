package agent

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type agentRepositoryStub struct {
	core.AgentRepository
	agents map[uuid.UUID]models.Agent

	findCalls int
	saved     []models.Agent
}

func (s *agentRepositoryStub) Read(id uuid.UUID) (models.Agent, error) {
	agent, ok := s.agents[id]
	if !ok {
		return models.Agent{}, gorm.ErrRecordNotFound
	}
	return agent, nil
}

func (s *agentRepositoryStub) Save(tx core.DB, agent *models.Agent) error {
	s.agents[agent.ID] = *agent
	s.saved = append(s.saved, *agent)
	return nil
}

func (s *agentRepositoryStub) GetAll() ([]models.Agent, error) {
	agents := make([]models.Agent, 0, len(s.agents))
	for _, agent := range s.agents {
		agents = append(agents, agent)
	}
	return agents, nil
}

func (s *agentRepositoryStub) FindByCapability(capability string) ([]models.Agent, error) {
	s.findCalls++
	var matching []models.Agent
	for _, agent := range s.agents {
		for _, c := range agent.Capabilities {
			if c == capability {
				matching = append(matching, agent)
			}
		}
	}
	return matching, nil
}

func newStub(agents ...models.Agent) *agentRepositoryStub {
	stub := &agentRepositoryStub{agents: map[uuid.UUID]models.Agent{}}
	for _, agent := range agents {
		stub.agents[agent.ID] = agent
	}
	return stub
}

func TestHeartbeat(t *testing.T) {
	t.Run("should flip the agent online and record the heartbeat time", func(t *testing.T) {
		existing := models.Agent{
			Model:  models.Model{ID: uuid.New()},
			Name:   "scanner-1",
			Status: models.AgentStatusOffline,
		}
		repository := newStub(existing)
		svc := NewService(repository, 8, time.Minute)

		agent, err := svc.Heartbeat(existing.ID, "v1.2.0", nil)

		assert.NoError(t, err)
		assert.Equal(t, models.AgentStatusOnline, agent.Status)
		assert.Equal(t, "v1.2.0", agent.Version)
		assert.NotNil(t, agent.LastHeartbeat)
	})

	t.Run("should keep the known version if the heartbeat omits it", func(t *testing.T) {
		existing := models.Agent{
			Model:   models.Model{ID: uuid.New()},
			Version: "v1.0.0",
		}
		repository := newStub(existing)
		svc := NewService(repository, 8, time.Minute)

		agent, err := svc.Heartbeat(existing.ID, "", nil)

		assert.NoError(t, err)
		assert.Equal(t, "v1.0.0", agent.Version)
	})

	t.Run("should return an error for an unknown agent", func(t *testing.T) {
		svc := NewService(newStub(), 8, time.Minute)

		_, err := svc.Heartbeat(uuid.New(), "v1.0.0", nil)

		assert.Error(t, err)
	})
}

func TestFindByCapability(t *testing.T) {
	t.Run("should serve repeated lookups from the cache", func(t *testing.T) {
		agent := models.Agent{
			Model:        models.Model{ID: uuid.New()},
			Name:         "scanner-1",
			Capabilities: []string{"sca", "secret-scanning"},
		}
		repository := newStub(agent)
		svc := NewService(repository, 8, time.Minute)

		first, err := svc.FindByCapability("sca")
		assert.NoError(t, err)
		second, err := svc.FindByCapability("sca")
		assert.NoError(t, err)

		assert.Len(t, first, 1)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, repository.findCalls)
	})

	t.Run("should invalidate the cache when a heartbeat changes capabilities", func(t *testing.T) {
		agent := models.Agent{
			Model:        models.Model{ID: uuid.New()},
			Capabilities: []string{"sca"},
		}
		repository := newStub(agent)
		svc := NewService(repository, 8, time.Minute)

		_, err := svc.FindByCapability("sca")
		assert.NoError(t, err)

		_, err = svc.Heartbeat(agent.ID, "", []string{"sca", "dast"})
		assert.NoError(t, err)

		_, err = svc.FindByCapability("sca")
		assert.NoError(t, err)
		// cache was purged, so the repository is hit again
		assert.Equal(t, 2, repository.findCalls)
	})
}

func TestMarkStaleAgentsOffline(t *testing.T) {
	now := time.Now()
	stale := now.Add(-10 * time.Minute)

	agents := []models.Agent{
		{Model: models.Model{ID: uuid.New()}, Name: "fresh", Status: models.AgentStatusOnline, LastHeartbeat: &now},
		{Model: models.Model{ID: uuid.New()}, Name: "stale", Status: models.AgentStatusOnline, LastHeartbeat: &stale},
		{Model: models.Model{ID: uuid.New()}, Name: "silent", Status: models.AgentStatusOnline},
		{Model: models.Model{ID: uuid.New()}, Name: "already-offline", Status: models.AgentStatusOffline},
	}
	repository := newStub(agents...)
	svc := NewService(repository, 8, time.Minute)

	err := svc.MarkStaleAgentsOffline()
	assert.NoError(t, err)

	// only the two stale online agents get rewritten
	assert.Len(t, repository.saved, 2)
	for _, agent := range repository.saved {
		assert.Equal(t, models.AgentStatusOffline, agent.Status)
	}
	assert.Equal(t, models.AgentStatusOnline, repository.agents[agents[0].ID].Status)
}
