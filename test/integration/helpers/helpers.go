//go:build integration

package helpers

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
	qb "github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/query_builder"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/database"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/sample"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/tools"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/require"
)

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// TestContext gives a test its own registry, tool dependencies and labels. Nodes carrying the
// labels handed out by GetUniqueLabel are removed when the test finishes.
type TestContext struct {
	T        *testing.T
	Ctx      context.Context
	Service  *database.Neo4jService
	Registry *mapping.Registry
	Mapper   *mapping.Mapper
	Deps     *tools.ToolDependencies

	labels []string
}

// Node is the JSON shape of a node returned by Neo4jRecordsToJSON.
type Node struct {
	Labels []string       `json:"Labels"`
	Props  map[string]any `json:"Props"`
}

func NewTestContext(t *testing.T, driver neo4j.DriverWithContext) *TestContext {
	t.Helper()

	reg := mapping.NewRegistry()
	require.NoError(t, sample.ConfigureModel(reg))
	service := database.NewNeo4jServiceWithDriver(driver, "neo4j")
	mapper := mapping.NewMapper(reg)

	tc := &TestContext{
		T:        t,
		Ctx:      context.Background(),
		Service:  service,
		Registry: reg,
		Mapper:   mapper,
		Deps: &tools.ToolDependencies{
			DBService: service,
			Mapper:    mapper,
			Catalog:   sample.Catalog(),
		},
	}
	t.Cleanup(tc.cleanup)
	return tc
}

// GetUniqueLabel returns base suffixed with a random token.
func (tc *TestContext) GetUniqueLabel(base string) string {
	label := base + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	tc.labels = append(tc.labels, label)
	return label
}

// IsolateLabel maps T to a unique label in this context's registry and returns it.
func IsolateLabel[T any](tc *TestContext) string {
	t := reflect.TypeFor[T]()
	label := tc.GetUniqueLabel(tc.Registry.LabelFor(t))
	tc.Registry.RegisterLabel(t, label)
	return label
}

// UniqueID returns a positive id that is unlikely to collide between parallel tests.
func UniqueID() int {
	return int(uuid.New().ID() & 0x7fffffff)
}

// Run executes q as a write and returns the records.
func (tc *TestContext) Run(q *qb.Query) []*neo4j.Record {
	tc.T.Helper()
	require.NoError(tc.T, q.Err())
	records, err := tc.Service.ExecuteWriteQuery(tc.Ctx, q.Text(), q.Params())
	require.NoError(tc.T, err, "query failed:\n%s", q.Text())
	return records
}

// CallTool invokes handler with args and fails the test on a tool error.
func (tc *TestContext) CallTool(handler toolHandler, args map[string]any) *mcp.CallToolResult {
	tc.T.Helper()
	res, err := handler(tc.Ctx, mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}})
	require.NoError(tc.T, err)
	require.NotNil(tc.T, res)
	require.False(tc.T, res.IsError, "tool returned an error: %s", resultText(tc.T, res))
	return res
}

// ParseJSONResponse decodes the first text content of res into out.
func (tc *TestContext) ParseJSONResponse(res *mcp.CallToolResult, out any) {
	tc.T.Helper()
	require.NoError(tc.T, json.Unmarshal([]byte(resultText(tc.T, res)), out))
}

// VerifyNodeInDB asserts exactly one node with label and props exists and returns its properties.
func (tc *TestContext) VerifyNodeInDB(label string, props map[string]any) map[string]any {
	tc.T.Helper()
	query := "MATCH (n:" + label + ") WHERE all(k IN keys($props) WHERE n[k] = $props[k]) RETURN n"
	records, err := tc.Service.ExecuteReadQuery(tc.Ctx, query, map[string]any{"props": props})
	require.NoError(tc.T, err)
	require.Len(tc.T, records, 1, "expected one %s node matching %v", label, props)

	n, ok := records[0].Get("n")
	require.True(tc.T, ok)
	node, ok := n.(neo4j.Node)
	require.True(tc.T, ok)
	return node.Props
}

// CountNodes returns the number of nodes carrying label.
func (tc *TestContext) CountNodes(label string) int64 {
	tc.T.Helper()
	records, err := tc.Service.ExecuteReadQuery(tc.Ctx, "MATCH (n:"+label+") RETURN count(n) AS c", nil)
	require.NoError(tc.T, err)
	require.Len(tc.T, records, 1)
	c, _ := records[0].Get("c")
	return c.(int64)
}

func (tc *TestContext) cleanup() {
	for _, label := range tc.labels {
		if _, err := tc.Service.ExecuteWriteQuery(tc.Ctx, "MATCH (n:"+label+") DETACH DELETE n", nil); err != nil {
			tc.T.Logf("failed to clean up %s nodes: %v", label, err)
		}
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}
