package agent

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/l3montree-dev/exposuremap/internal/monitoring"
	"github.com/pkg/errors"
)

// how long an agent may stay silent before it counts as offline
const heartbeatWindow = 5 * time.Minute

type service struct {
	agentRepository core.AgentRepository

	// read-through cache for capability lookups. The scheduler asks
	// for "who can run sca" on every pipeline run - no need to hit
	// the database each time. TTL is injected, not hardcoded ambient
	// state.
	capabilityCache *expirable.LRU[string, []models.Agent]
}

func NewService(agentRepository core.AgentRepository, cacheSize int, cacheTTL time.Duration) *service {
	return &service{
		agentRepository: agentRepository,
		capabilityCache: expirable.NewLRU[string, []models.Agent](cacheSize, nil, cacheTTL),
	}
}

// Heartbeat updates the agent's liveness and advertised capabilities.
// Any capability change invalidates the lookup cache.
func (s *service) Heartbeat(agentID uuid.UUID, version string, capabilities []string) (models.Agent, error) {
	monitoring.AgentHeartbeatAmount.Inc()

	agent, err := s.agentRepository.Read(agentID)
	if err != nil {
		return models.Agent{}, errors.Wrap(err, "could not read agent")
	}

	now := time.Now()
	agent.LastHeartbeat = &now
	agent.Status = models.AgentStatusOnline
	if version != "" {
		agent.Version = version
	}
	if capabilities != nil {
		agent.Capabilities = capabilities
		s.capabilityCache.Purge()
	}

	if err := s.agentRepository.Save(nil, &agent); err != nil {
		return models.Agent{}, errors.Wrap(err, "could not save heartbeat")
	}
	return agent, nil
}

// FindByCapability returns the agents advertising a capability,
// served through the expirable cache.
func (s *service) FindByCapability(capability string) ([]models.Agent, error) {
	if agents, ok := s.capabilityCache.Get(capability); ok {
		return agents, nil
	}

	agents, err := s.agentRepository.FindByCapability(capability)
	if err != nil {
		return nil, errors.Wrap(err, "could not look up agents by capability")
	}

	s.capabilityCache.Add(capability, agents)
	return agents, nil
}

// MarkStaleAgentsOffline flips agents without a recent heartbeat to
// offline. Called periodically by the heartbeat daemon.
func (s *service) MarkStaleAgentsOffline() error {
	agents, err := s.agentRepository.GetAll()
	if err != nil {
		return errors.Wrap(err, "could not list agents")
	}

	for _, agent := range agents {
		if agent.Status == models.AgentStatusOffline || !agent.IsStale(heartbeatWindow) {
			continue
		}
		agent.Status = models.AgentStatusOffline
		if err := s.agentRepository.Save(nil, &agent); err != nil {
			return errors.Wrap(err, "could not mark agent offline")
		}
	}
	return nil
}
