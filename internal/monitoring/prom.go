// Copyright 2025 l3montree GmbH
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RelationshipGraphBuildAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "exposuremap_relationship_graph_build_amount",
	Help: "The total number of relationship graph builds",
})

var RelationshipGraphBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "exposuremap_relationship_graph_build_duration_seconds",
	Help:    "Duration of relationship graph builds in seconds",
	Buckets: prometheus.DefBuckets,
})

var PipelineLayoutAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "exposuremap_pipeline_layout_amount",
	Help: "The total number of pipeline auto layout runs",
})

var AgentHeartbeatAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "exposuremap_agent_heartbeat_amount",
	Help: "The total number of agent heartbeats received",
})

var AttackPathDiscoveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "exposuremap_attack_path_discovery_duration_seconds",
	Help:    "Duration of attack path discoveries in seconds",
	Buckets: prometheus.DefBuckets,
})
