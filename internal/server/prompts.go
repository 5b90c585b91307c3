package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mkd-neo4j/neo4j-cypher-extension/docs"
)

const mappingGuidePrompt = "entity-mapping-guide"

func (s *Neo4jMCPServer) registerPrompts() {
	s.MCPServer.AddPrompt(
		mcp.NewPrompt(mappingGuidePrompt,
			mcp.WithPromptDescription("How entity mappings turn into MATCH, MERGE and CREATE clauses, and which tool to use when"),
		),
		handleMappingGuide,
	)
}

func handleMappingGuide(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return mcp.NewGetPromptResult(
		"Entity mapping guide",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(docs.MappingGuidePrompt)),
		},
	), nil
}
