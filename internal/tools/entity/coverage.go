package entity

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/tools"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	// nodePropertiesQuery lists the property keys seen per node label combination
	nodePropertiesQuery = `
		CALL db.schema.nodeTypeProperties()
		YIELD nodeLabels, propertyName
		RETURN nodeLabels, propertyName
	`

	// relPropertiesQuery lists the property keys seen per relationship type
	relPropertiesQuery = `
		CALL db.schema.relTypeProperties()
		YIELD relType, propertyName
		RETURN relType, propertyName
	`
)

var relationshipType = reflect.TypeFor[mapping.Relationship]()

// CoverageSpec returns the MCP tool specification for check-entity-mappings
func CoverageSpec() mcp.Tool {
	return mcp.NewTool("check-entity-mappings",
		mcp.WithDescription(`Compares the mapped entity types against the live database schema.

For every mapped type, reports whether its label or relationship type exists in the database and which
mapped property keys have never been written. Useful after changing a mapping file or the property casing.`),
		mcp.WithTitleAnnotation("Check Entity Mappings"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// CoverageHandler returns the tool handler function for check-entity-mappings
func CoverageHandler(deps *tools.ToolDependencies) handlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCoverage(ctx, deps)
	}
}

// Coverage is the per-type result of check-entity-mappings.
type Coverage struct {
	Type              string   `json:"type"`
	Kind              string   `json:"kind"`
	Label             string   `json:"label"`
	Present           bool     `json:"present"`
	MissingProperties []string `json:"missingProperties,omitempty"`
}

func handleCoverage(ctx context.Context, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
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

	slog.Info("checking entity mappings against the database", "database", deps.DBService.GetDatabaseName())

	nodeRecords, err := deps.DBService.ExecuteReadQuery(ctx, nodePropertiesQuery, nil)
	if err != nil {
		slog.Error("failed to execute node properties query", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	relRecords, err := deps.DBService.ExecuteReadQuery(ctx, relPropertiesQuery, nil)
	if err != nil {
		slog.Error("failed to execute relationship properties query", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	report := checkCoverage(deps.Mapper.Registry(), deps.Catalog.Names(), deps.Catalog.Lookup, nodeRecords, relRecords)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		slog.Error("error formatting coverage report", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

type labelSet struct {
	labels     map[string]bool
	properties map[string]bool
}

func checkCoverage(reg *mapping.Registry, names []string, lookup func(string) (reflect.Type, error), nodeRecords, relRecords []*neo4j.Record) []Coverage {
	nodes := nodeLabelSets(nodeRecords)
	rels := relProperties(relRecords)

	report := make([]Coverage, 0, len(names))
	for _, name := range names {
		t, err := lookup(name)
		if err != nil {
			continue
		}
		label := reg.LabelFor(t)
		mapped := mappedWireNames(reg, t)

		c := Coverage{Type: name, Label: label, Kind: "node"}
		var seen map[string]bool
		if reflect.PointerTo(t).Implements(relationshipType) {
			c.Kind = "relationship"
			seen, c.Present = rels[trimLabel(label)]
		} else {
			seen, c.Present = matchLabels(nodes, splitLabels(label))
		}

		if c.Present {
			for _, w := range mapped {
				if !seen[w] {
					c.MissingProperties = append(c.MissingProperties, w)
				}
			}
		}
		report = append(report, c)
	}
	return report
}

func mappedWireNames(reg *mapping.Registry, t reflect.Type) []string {
	var all mapping.Properties
	for _, p := range mapping.Purposes {
		all = append(all, reg.PropertiesForPurpose(t, p)...)
	}
	names := all.Dedupe().WireNames()
	sort.Strings(names)
	return names
}

func nodeLabelSets(records []*neo4j.Record) []labelSet {
	byKey := make(map[string]*labelSet)
	var order []string
	for _, record := range records {
		labelsRaw, _ := record.Get("nodeLabels")
		propertyName, _ := record.Get("propertyName")

		labels, ok := labelsRaw.([]any)
		if !ok || len(labels) == 0 {
			continue
		}
		set := make(map[string]bool, len(labels))
		keys := make([]string, 0, len(labels))
		for _, l := range labels {
			if s, ok := l.(string); ok {
				set[s] = true
				keys = append(keys, s)
			}
		}
		sort.Strings(keys)
		key := strings.Join(keys, ":")
		entry, ok := byKey[key]
		if !ok {
			entry = &labelSet{labels: set, properties: make(map[string]bool)}
			byKey[key] = entry
			order = append(order, key)
		}
		if name, ok := propertyName.(string); ok {
			entry.properties[name] = true
		}
	}

	sets := make([]labelSet, 0, len(order))
	for _, key := range order {
		sets = append(sets, *byKey[key])
	}
	return sets
}

func relProperties(records []*neo4j.Record) map[string]map[string]bool {
	rels := make(map[string]map[string]bool)
	for _, record := range records {
		relTypeRaw, _ := record.Get("relType")
		propertyName, _ := record.Get("propertyName")

		relType, ok := relTypeRaw.(string)
		if !ok {
			continue
		}
		relType = trimLabel(relType)
		if rels[relType] == nil {
			rels[relType] = make(map[string]bool)
		}
		if name, ok := propertyName.(string); ok {
			rels[relType][name] = true
		}
	}
	return rels
}

// matchLabels merges the properties of every label combination that carries all wanted labels.
func matchLabels(sets []labelSet, wanted []string) (map[string]bool, bool) {
	properties := make(map[string]bool)
	found := false
	for _, set := range sets {
		all := true
		for _, w := range wanted {
			if !set.labels[w] {
				all = false
				break
			}
		}
		if !all {
			continue
		}
		found = true
		for p := range set.properties {
			properties[p] = true
		}
	}
	return properties, found
}

// splitLabels splits "A:`B C`" into ["A", "B C"].
func splitLabels(label string) []string {
	var labels []string
	var current strings.Builder
	quoted := false
	for _, r := range label {
		switch {
		case r == '`':
			quoted = !quoted
		case r == ':' && !quoted:
			if current.Len() > 0 {
				labels = append(labels, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		labels = append(labels, current.String())
	}
	return labels
}

// trimLabel turns ":`HOME_ADDRESS`" into "HOME_ADDRESS".
func trimLabel(s string) string {
	s = strings.TrimPrefix(s, ":")
	return strings.Trim(s, "`")
}
