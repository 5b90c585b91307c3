package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/config"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/database"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/modelconfig"
)

const serverName = "neo4j-cypher-extension"

// Neo4jMCPServer exposes the entity mappings as MCP tools over stdio.
type Neo4jMCPServer struct {
	MCPServer *server.MCPServer
	config    *config.Config
	dbService database.Service
	mapper    *mapping.Mapper
	catalog   *modelconfig.Catalog
}

// NewNeo4jMCPServer creates the server. Tools are registered by Start.
func NewNeo4jMCPServer(version string, cfg *config.Config, dbService database.Service, mapper *mapping.Mapper, catalog *modelconfig.Catalog) *Neo4jMCPServer {
	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	return &Neo4jMCPServer{
		MCPServer: mcpServer,
		config:    cfg,
		dbService: dbService,
		mapper:    mapper,
		catalog:   catalog,
	}
}

// Start verifies the database, registers tools and prompts, then serves stdio until the client disconnects.
func (s *Neo4jMCPServer) Start(ctx context.Context) error {
	if err := s.dbService.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if err := s.registerTools(); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	s.registerPrompts()

	slog.Info("starting MCP server", "name", serverName, "database", s.dbService.GetDatabaseName(), "readOnly", s.config.ReadOnly)
	return server.ServeStdio(s.MCPServer)
}

// Stop closes the database connection.
func (s *Neo4jMCPServer) Stop(ctx context.Context) error {
	return s.dbService.Close(ctx)
}
