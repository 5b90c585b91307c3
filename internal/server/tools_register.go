package server

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/tools"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/tools/entity"
)

// registerTools registers all enabled MCP tools and adds them to the provided MCP server.
// When read-only mode is enabled (NEO4J_READ_ONLY or Config.ReadOnly) any tool that writes to the
// database is excluded.
func (s *Neo4jMCPServer) registerTools() error {
	filteredTools := s.getEnabledTools()
	s.MCPServer.AddTools(filteredTools...)
	return nil
}

type toolFilter func(tools []ToolDefinition) []ToolDefinition

type toolCategory int

const (
	mappingCategory toolCategory = 0 // Mapping introspection, no database access
	entityCategory  toolCategory = 1 // Entity queries against the database
)

type ToolDefinition struct {
	category   toolCategory
	definition server.ServerTool
	readonly   bool
}

func (s *Neo4jMCPServer) getEnabledTools() []server.ServerTool {
	filters := make([]toolFilter, 0)

	// If read-only mode is enabled, expose only tools annotated as read-only.
	if s.config != nil && s.config.ReadOnly {
		filters = append(filters, filterWriteTools)
	}
	deps := &tools.ToolDependencies{
		DBService: s.dbService,
		Mapper:    s.mapper,
		Catalog:   s.catalog,
	}
	toolDefs := s.getAllToolsDefs(deps)

	for _, filter := range filters {
		toolDefs = filter(toolDefs)
	}
	enabledTools := make([]server.ServerTool, 0)
	for _, toolDef := range toolDefs {
		enabledTools = append(enabledTools, toolDef.definition)
	}
	return enabledTools
}

func filterWriteTools(tools []ToolDefinition) []ToolDefinition {
	readOnlyTools := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		if t.readonly {
			readOnlyTools = append(readOnlyTools, t)
		}
	}
	return readOnlyTools
}

// getAllToolsDefs returns all available tools with their specs and handlers
func (s *Neo4jMCPServer) getAllToolsDefs(deps *tools.ToolDependencies) []ToolDefinition {
	return []ToolDefinition{
		{
			category: mappingCategory,
			definition: server.ServerTool{
				Tool:    entity.ListMappingsSpec(),
				Handler: entity.ListMappingsHandler(deps),
			},
			readonly: true,
		},
		{
			category: mappingCategory,
			definition: server.ServerTool{
				Tool:    entity.PreviewSpec(),
				Handler: entity.PreviewHandler(deps),
			},
			readonly: true,
		},
		{
			category: entityCategory,
			definition: server.ServerTool{
				Tool:    entity.CoverageSpec(),
				Handler: entity.CoverageHandler(deps),
			},
			readonly: true,
		},
		{
			category: entityCategory,
			definition: server.ServerTool{
				Tool:    entity.MatchSpec(),
				Handler: entity.MatchHandler(deps),
			},
			readonly: true,
		},
		{
			category: entityCategory,
			definition: server.ServerTool{
				Tool:    entity.MergeSpec(),
				Handler: entity.MergeHandler(deps),
			},
			readonly: false,
		},
	}
}
