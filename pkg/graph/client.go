package graph

import (
	"time"

	"github.com/meridian-research/triad/internal/util"
)

// GraphClient drives the document-to-graph pipeline: chunking, parallel
// extraction, merging and insight discovery. It holds tuning knobs only;
// the AI client is passed per call.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	chunkSize      int
	chunkOverlap   int
	parallelChunks int
	maxRetries     int
	callTimeout    time.Duration
	entityTypes    []string
	pathConfig     PathConfig
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient. Zero values fall back to defaults: 6000-character
// chunks with 300 overlap, 4 parallel extraction calls, 3 attempts per
// call, and the stock path discovery configuration.
type NewGraphClientParams struct {
	ChunkSize      int
	ChunkOverlap   int
	ParallelChunks int
	MaxRetries     int
	CallTimeout    time.Duration
	EntityTypes    []string
	PathConfig     *PathConfig
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
func NewGraphClient(params NewGraphClientParams) *GraphClient {
	g := &GraphClient{
		chunkSize:      params.ChunkSize,
		chunkOverlap:   params.ChunkOverlap,
		parallelChunks: params.ParallelChunks,
		maxRetries:     params.MaxRetries,
		callTimeout:    params.CallTimeout,
		entityTypes:    params.EntityTypes,
	}
	if g.chunkSize <= 0 {
		g.chunkSize = 6000
	}
	if g.chunkOverlap < 0 {
		g.chunkOverlap = 0
	}
	if params.ChunkSize <= 0 && params.ChunkOverlap == 0 {
		g.chunkOverlap = 300
	}
	if g.parallelChunks <= 0 {
		g.parallelChunks = 4
	}
	if g.maxRetries <= 0 {
		g.maxRetries = 3
	}
	if len(g.entityTypes) == 0 {
		g.entityTypes = DefaultEntityTypes
	}
	if params.PathConfig != nil {
		g.pathConfig = *params.PathConfig
	} else {
		g.pathConfig = DefaultPathConfig()
	}
	return g
}

// NewGraphClientFromEnv builds a GraphClient from environment variables,
// falling back to defaults for anything unset.
func NewGraphClientFromEnv() *GraphClient {
	return NewGraphClient(NewGraphClientParams{
		ChunkSize:      util.GetEnvInt("GRAPH_CHUNK_SIZE", 6000),
		ChunkOverlap:   util.GetEnvInt("GRAPH_CHUNK_OVERLAP", 300),
		ParallelChunks: util.GetEnvInt("GRAPH_PARALLEL_CHUNKS", 4),
		MaxRetries:     util.GetEnvInt("GRAPH_MAX_RETRIES", 3),
		CallTimeout:    time.Duration(util.GetEnvInt("AI_CALL_TIMEOUT_SECONDS", 90)) * time.Second,
	})
}

// PathConfig returns the path discovery configuration in use.
func (g *GraphClient) PathConfig() PathConfig {
	return g.pathConfig
}
