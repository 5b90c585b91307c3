package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jService implements Service on top of a driver.
type Neo4jService struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jService creates a driver for uri using basic auth.
func NewNeo4jService(uri, username, password, database string) (*Neo4jService, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return NewNeo4jServiceWithDriver(driver, database), nil
}

// NewNeo4jServiceWithDriver wraps an existing driver.
func NewNeo4jServiceWithDriver(driver neo4j.DriverWithContext, database string) *Neo4jService {
	return &Neo4jService{driver: driver, database: database}
}

func (s *Neo4jService) VerifyConnectivity(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to verify connectivity: %w", err)
	}
	return nil
}

func (s *Neo4jService) ExecuteReadQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	return s.execute(ctx, query, params, neo4j.ExecuteQueryWithReadersRouting())
}

func (s *Neo4jService) ExecuteWriteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	return s.execute(ctx, query, params, neo4j.ExecuteQueryWithWritersRouting())
}

func (s *Neo4jService) execute(ctx context.Context, query string, params map[string]any, routing neo4j.ExecuteQueryConfigurationOption) ([]*neo4j.Record, error) {
	slog.Debug("executing cypher", "database", s.database, "query", query, "params", len(params))

	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		routing,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return result.Records, nil
}

func (s *Neo4jService) Neo4jRecordsToJSON(records []*neo4j.Record) (string, error) {
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.AsMap())
	}
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal records: %w", err)
	}
	return string(out), nil
}

func (s *Neo4jService) GetDatabaseName() string {
	return s.database
}

func (s *Neo4jService) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
