package database

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

//go:generate mockgen -destination=mocks/mock_database.go -package=mocks github.com/mkd-neo4j/neo4j-cypher-extension/internal/database Service

// Service is the database surface the tools depend on.
type Service interface {
	// VerifyConnectivity checks the driver can reach the server.
	VerifyConnectivity(ctx context.Context) error
	// ExecuteReadQuery runs query against a reader and returns every record.
	ExecuteReadQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)
	// ExecuteWriteQuery runs query against the leader and returns every record.
	ExecuteWriteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)
	// Neo4jRecordsToJSON renders records as a JSON array of objects keyed by column.
	Neo4jRecordsToJSON(records []*neo4j.Record) (string, error)
	// GetDatabaseName returns the database queries are routed to.
	GetDatabaseName() string
	Close(ctx context.Context) error
}
