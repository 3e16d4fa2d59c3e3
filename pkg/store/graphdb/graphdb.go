// Package graphdb persists document graphs in Neo4j and runs read queries
// against them.
package graphdb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/meridian-research/triad/internal/util"
	"github.com/meridian-research/triad/pkg/common"
	"github.com/meridian-research/triad/pkg/logger"
)

// ExecutionError reports a query that the database rejected or that failed
// mid-flight. The query string is retained for diagnostics.
type ExecutionError struct {
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("graph query failed: %v (query: %s)", e.Err, e.Query)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Client wraps a Neo4j driver for one database.
//
// A Client should be created using NewClient or NewClientFromEnv.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

type NewClientParams struct {
	URI      string
	Username string
	Password string
	Database string
}

// NewClient connects to Neo4j and verifies connectivity before returning.
func NewClient(ctx context.Context, params NewClientParams) (*Client, error) {
	username := params.Username
	if username == "" {
		username = "neo4j"
	}

	driver, err := neo4j.NewDriverWithContext(params.URI, neo4j.BasicAuth(username, params.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify neo4j connectivity: %w", err)
	}

	return &Client{driver: driver, database: params.Database}, nil
}

// NewClientFromEnv builds a Client from NEO4J_URI, NEO4J_USER,
// NEO4J_PASSWORD and NEO4J_DATABASE. Returns (nil, nil) when NEO4J_URI is
// unset, so callers can treat the graph database as optional.
func NewClientFromEnv(ctx context.Context) (*Client, error) {
	uri := strings.TrimSpace(util.GetEnv("NEO4J_URI"))
	if uri == "" {
		logger.Info("NEO4J_URI not set, graph persistence disabled")
		return nil, nil
	}
	return NewClient(ctx, NewClientParams{
		URI:      uri,
		Username: util.GetEnvString("NEO4J_USER", "neo4j"),
		Password: util.GetEnv("NEO4J_PASSWORD"),
		Database: util.GetEnv("NEO4J_DATABASE"),
	})
}

// Close releases the underlying driver.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	return c.driver.Close(ctx)
}

var invalidLabelChars = regexp.MustCompile(`\W`)

// sanitizeLabel turns a free-form entity type into a valid Neo4j label.
func sanitizeLabel(label string) string {
	cleaned := invalidLabelChars.ReplaceAllString(strings.TrimSpace(label), "_")
	if cleaned == "" || cleaned == "_" {
		return "Entity"
	}
	return cleaned
}

// sanitizeRelType turns a free-form relationship type into a valid
// uppercase relationship type.
func sanitizeRelType(relType string) string {
	cleaned := invalidLabelChars.ReplaceAllString(strings.TrimSpace(relType), "_")
	if cleaned == "" || cleaned == "_" {
		return "RELATES_TO"
	}
	return strings.ToUpper(cleaned)
}

// SaveGraph writes a document graph with MERGE semantics: re-ingesting the
// same document is idempotent. Nodes are keyed by id, relationships by
// their endpoints and type.
func (c *Client) SaveGraph(ctx context.Context, g common.DocumentGraph) error {
	if c == nil {
		return nil
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, node := range g.Nodes {
			query := fmt.Sprintf("MERGE (n:`%s` {id: $id})", sanitizeLabel(node.Type))
			if _, err := tx.Run(ctx, query, map[string]any{"id": node.ID}); err != nil {
				return nil, fmt.Errorf("failed to merge node %q: %w", node.ID, err)
			}
		}
		for _, rel := range g.Relationships {
			query := fmt.Sprintf(
				"MATCH (a {id: $source}) MATCH (b {id: $target}) MERGE (a)-[r:`%s`]->(b)",
				sanitizeRelType(rel.Type),
			)
			params := map[string]any{"source": rel.Source, "target": rel.Target}
			if _, err := tx.Run(ctx, query, params); err != nil {
				return nil, fmt.Errorf("failed to merge relationship %q-[%s]->%q: %w", rel.Source, rel.Type, rel.Target, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save graph: %w", err)
	}

	logger.Info("Saved graph to neo4j", "nodes", len(g.Nodes), "relationships", len(g.Relationships))
	return nil
}

// Run executes a single query and returns every record as a map. The row
// shape is whatever the query requested.
func (c *Client) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if c == nil {
		return nil, &ExecutionError{Query: query, Err: fmt.Errorf("graph database not configured")}
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, &ExecutionError{Query: query, Err: err}
	}

	var rows []map[string]any
	for result.Next(ctx) {
		rows = append(rows, result.Record().AsMap())
	}
	if err := result.Err(); err != nil {
		return nil, &ExecutionError{Query: query, Err: err}
	}
	return rows, nil
}
