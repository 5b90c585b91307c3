package tools

import (
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/database"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/modelconfig"
)

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	DBService database.Service
	Mapper    *mapping.Mapper
	Catalog   *modelconfig.Catalog
}
