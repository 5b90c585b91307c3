package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
	qb "github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/query_builder"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/tools"
)

type handlerFunc = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ListMappingsHandler returns the tool handler function for list-entity-mappings
func ListMappingsHandler(deps *tools.ToolDependencies) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListMappings(deps)
	}
}

// PreviewHandler returns the tool handler function for preview-entity-cypher
func PreviewHandler(deps *tools.ToolDependencies) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handlePreview(request, deps)
	}
}

// MatchHandler returns the tool handler function for match-entity
func MatchHandler(deps *tools.ToolDependencies) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleExecute(ctx, request, deps, OpMatch)
	}
}

// MergeHandler returns the tool handler function for merge-entity
func MergeHandler(deps *tools.ToolDependencies) handlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleExecute(ctx, request, deps, OpMerge)
	}
}

type mappingView struct {
	Type       string              `json:"type"`
	Label      string              `json:"label"`
	Properties map[string][]string `json:"properties"`
}

func handleListMappings(deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.Mapper == nil || deps.Catalog == nil {
		errMessage := "Entity mappings are not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	reg := deps.Mapper.Registry()
	views := make([]mappingView, 0)
	for _, name := range deps.Catalog.Names() {
		t, err := deps.Catalog.Lookup(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		view := mappingView{Type: name, Label: reg.LabelFor(t), Properties: make(map[string][]string)}
		for _, p := range mapping.Purposes {
			view.Properties[p.String()] = reg.PropertiesForPurpose(t, p).WireNames()
		}
		views = append(views, view)
	}

	out, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		slog.Error("error formatting entity mappings", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

type previewView struct {
	Cypher string         `json:"cypher"`
	Params map[string]any `json:"params"`
	Debug  string         `json:"debug"`
}

func handlePreview(request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.Mapper == nil || deps.Catalog == nil {
		errMessage := "Entity mappings are not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	var args PreviewInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	e, err := decodeEntity(deps, args.EntityType, args.Entity)
	if err != nil {
		slog.Error("error decoding entity", "entityType", args.EntityType, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	q, err := buildQuery(deps.Mapper, args.Operation, e, args.Identifier)
	if err != nil {
		slog.Error("error building cypher", "operation", args.Operation, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.MarshalIndent(previewView{Cypher: q.Text(), Params: q.Params(), Debug: q.FormattedDebugText()}, "", "  ")
	if err != nil {
		slog.Error("error formatting preview", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func handleExecute(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies, op string) (*mcp.CallToolResult, error) {
	if deps.DBService == nil {
		errMessage := "Database service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}
	if deps.Mapper == nil || deps.Catalog == nil {
		errMessage := "Entity mappings are not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	var args EntityInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	e, err := decodeEntity(deps, args.EntityType, args.Entity)
	if err != nil {
		slog.Error("error decoding entity", "entityType", args.EntityType, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	q, err := buildQuery(deps.Mapper, op, e, args.Identifier)
	if err != nil {
		slog.Error("error building cypher", "operation", op, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	q.Return(deps.Mapper.Registry().Identifier(e, args.Identifier))

	slog.Debug("executing entity query", "operation", op, "query", q.Text())

	execute := deps.DBService.ExecuteReadQuery
	if op == OpMerge {
		execute = deps.DBService.ExecuteWriteQuery
	}
	records, err := execute(ctx, q.Text(), q.Params())
	if err != nil {
		slog.Error("error executing entity query", "operation", op, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	response, err := deps.DBService.Neo4jRecordsToJSON(records)
	if err != nil {
		slog.Error("error formatting query results", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(response), nil
}

func buildQuery(m *mapping.Mapper, op string, e any, identifier string) (*qb.Query, error) {
	q := qb.NewQuery()
	var err error
	switch op {
	case OpMatch:
		err = m.MatchEntity(q, e, mapping.NewMatchOptions(identifier))
	case OpOptionalMatch:
		err = m.OptionalMatchEntity(q, e, mapping.NewMatchOptions(identifier))
	case OpCreate:
		err = m.CreateEntity(q, e, mapping.NewCreateOptions(identifier))
	case OpMerge:
		err = m.MergeEntity(q, e, mapping.NewMergeOptions(identifier))
	default:
		return nil, fmt.Errorf("unsupported operation %q, expected one of %s, %s, %s, %s", op, OpMatch, OpOptionalMatch, OpCreate, OpMerge)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// decodeEntity builds a value of the named type from loosely typed tool arguments.
func decodeEntity(deps *tools.ToolDependencies, entityType string, fields map[string]any) (any, error) {
	if entityType == "" {
		return nil, fmt.Errorf("entityType parameter is required")
	}
	e, err := deps.Catalog.New(entityType)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("entity parameter is required and cannot be empty")
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	if err := json.Unmarshal(raw, e); err != nil {
		return nil, fmt.Errorf("failed to decode entity as %s: %w", reflect.TypeOf(e).Elem().Name(), err)
	}
	return e, nil
}
