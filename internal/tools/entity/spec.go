package entity

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Operation names accepted by the preview tool.
const (
	OpMatch         = "match"
	OpOptionalMatch = "optional_match"
	OpCreate        = "create"
	OpMerge         = "merge"
)

// EntityInput identifies a mapped type and the values of one instance.
type EntityInput struct {
	// EntityType is the catalog name of the type (e.g. "Person")
	EntityType string `json:"entityType" jsonschema:"description=Mapped entity type name. Call list-entity-mappings to see the available types."`

	// Entity holds field values keyed by field name; matching is case-insensitive
	Entity map[string]any `json:"entity" jsonschema:"description=Field values for the entity keyed by Go field name (e.g. {\"ID\": 7, \"Name\": \"Sterling Archer\"})"`

	// Identifier overrides the Cypher variable name
	Identifier string `json:"identifier,omitempty" jsonschema:"description=Optional Cypher variable name. Defaults to the lower-cased type name."`
}

// PreviewInput adds the clause to render.
type PreviewInput struct {
	EntityType string         `json:"entityType" jsonschema:"description=Mapped entity type name"`
	Entity     map[string]any `json:"entity" jsonschema:"description=Field values for the entity keyed by Go field name"`
	Identifier string         `json:"identifier,omitempty" jsonschema:"description=Optional Cypher variable name"`
	Operation  string         `json:"operation" jsonschema:"enum=match,enum=optional_match,enum=create,enum=merge,description=Clause to render"`
}

// ListMappingsSpec returns the MCP tool specification for list-entity-mappings
func ListMappingsSpec() mcp.Tool {
	return mcp.NewTool("list-entity-mappings",
		mcp.WithDescription(`Lists every mapped entity type with its label and the property keys used for each purpose.

**PURPOSES:**
- match: keys in MATCH patterns
- merge: keys in MERGE patterns
- oncreate: properties written by CREATE and by MERGE when the node is created
- onmatch: properties written by MERGE when the node already exists

Use this before calling preview-entity-cypher, match-entity or merge-entity to learn the type names and fields.`),
		mcp.WithTitleAnnotation("List Entity Mappings"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// PreviewSpec returns the MCP tool specification for preview-entity-cypher
func PreviewSpec() mcp.Tool {
	return mcp.NewTool("preview-entity-cypher",
		mcp.WithDescription(`Renders the parameterized Cypher that a mapped entity produces, without touching the database.

Returns the query text, its parameters, and a debug rendering with the parameters inlined.

**EXAMPLE:**
{"entityType": "Person", "operation": "merge", "entity": {"ID": 7, "Name": "Sterling Archer"}}
renders
MERGE (person:SecretAgent {id:$personMatchKey.id})
ON MATCH SET person.name = $personname
ON CREATE SET person = $personOnCreate`),
		mcp.WithInputSchema[PreviewInput](),
		mcp.WithTitleAnnotation("Preview Entity Cypher"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// MatchSpec returns the MCP tool specification for match-entity
func MatchSpec() mcp.Tool {
	return mcp.NewTool("match-entity",
		mcp.WithDescription(`Finds nodes matching the entity's match keys and returns them.`),
		mcp.WithInputSchema[EntityInput](),
		mcp.WithTitleAnnotation("Match Entity"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// MergeSpec returns the MCP tool specification for merge-entity
func MergeSpec() mcp.Tool {
	return mcp.NewTool("merge-entity",
		mcp.WithDescription(`Merges the entity on its merge keys, updating on-match properties on an existing node
or writing the on-create properties on a new one, and returns the node.`),
		mcp.WithInputSchema[EntityInput](),
		mcp.WithTitleAnnotation("Merge Entity"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
