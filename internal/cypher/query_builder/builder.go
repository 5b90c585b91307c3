package query_builder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/value"
)

// ErrParamConflict is returned when a parameter name is bound twice with different values.
var ErrParamConflict = errors.New("parameter already bound with a different value")

// Query accumulates Cypher clauses and their named parameters.
// It is the surface the mapping layer writes fragments into; the finished text and
// parameters are handed to the database service for execution.
type Query struct {
	clauses    []Clause
	paramNames []string
	params     map[string]value.Value
	err        error
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{
		clauses: make([]Clause, 0),
		params:  make(map[string]value.Value),
	}
}

func (q *Query) add(kind ClauseKind, text string) *Query {
	q.clauses = append(q.clauses, Clause{Kind: kind, Text: text})
	return q
}

// Match appends a MATCH clause.
func (q *Query) Match(pattern string) *Query { return q.add(Match, pattern) }

// OptionalMatch appends an OPTIONAL MATCH clause.
func (q *Query) OptionalMatch(pattern string) *Query { return q.add(OptionalMatch, pattern) }

// Merge appends a MERGE clause.
func (q *Query) Merge(pattern string) *Query { return q.add(Merge, pattern) }

// Create appends a CREATE clause.
func (q *Query) Create(pattern string) *Query { return q.add(Create, pattern) }

// OnMatchSet appends an ON MATCH SET clause. It must follow a MERGE.
func (q *Query) OnMatchSet(assignment string) *Query { return q.add(OnMatchSet, assignment) }

// OnCreateSet appends an ON CREATE SET clause. It must follow a MERGE.
func (q *Query) OnCreateSet(assignment string) *Query { return q.add(OnCreateSet, assignment) }

// Return appends a RETURN clause.
func (q *Query) Return(projection string) *Query { return q.add(Return, projection) }

// WithParam binds v to $name. Binding the same name again with an equal value is a no-op;
// binding it with a different value records ErrParamConflict, reported by Err.
func (q *Query) WithParam(name string, v value.Value) *Query {
	if err := q.bind(name, v); err != nil && q.err == nil {
		q.err = err
	}
	return q
}

func (q *Query) bind(name string, v value.Value) error {
	if existing, ok := q.params[name]; ok {
		if !existing.Equal(v) {
			return fmt.Errorf("%w: $%s", ErrParamConflict, name)
		}
		return nil
	}
	q.paramNames = append(q.paramNames, name)
	q.params[name] = v
	return nil
}

// Apply appends a fragment. Parameters are checked for conflicts before anything is appended,
// so a rejected fragment leaves the query unchanged.
//
// A fragment that binds one name to two different values is rejected the same way.
func (q *Query) Apply(f Fragment) error {
	pending := make(map[string]value.Value, len(f.Params))
	for _, p := range f.Params {
		if existing, ok := q.params[p.Name]; ok && !existing.Equal(p.Value) {
			return fmt.Errorf("%w: $%s", ErrParamConflict, p.Name)
		}
		if existing, ok := pending[p.Name]; ok && !existing.Equal(p.Value) {
			return fmt.Errorf("%w: $%s bound twice in one fragment", ErrParamConflict, p.Name)
		}
		pending[p.Name] = p.Value
	}
	q.clauses = append(q.clauses, f.Clauses...)
	for _, p := range f.Params {
		if err := q.bind(p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Err returns the first error recorded by WithParam.
func (q *Query) Err() error {
	return q.err
}

// Clauses returns a copy of the clauses added so far.
func (q *Query) Clauses() []Clause {
	return append([]Clause(nil), q.clauses...)
}

// GetClauseCount returns the number of clauses added.
func (q *Query) GetClauseCount() int {
	return len(q.clauses)
}

// Text returns the query text, one clause per line.
func (q *Query) Text() string {
	if len(q.clauses) == 0 {
		return ""
	}
	lines := make([]string, len(q.clauses))
	for i, c := range q.clauses {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// ParamNames returns parameter names in binding order.
func (q *Query) ParamNames() []string {
	return append([]string(nil), q.paramNames...)
}

// Param returns the value bound to name.
func (q *Query) Param(name string) (value.Value, bool) {
	v, ok := q.params[name]
	return v, ok
}

// Params returns the parameters as plain Go values for the driver.
func (q *Query) Params() map[string]any {
	out := make(map[string]any, len(q.params))
	for name, v := range q.params {
		out[name] = v.Native()
	}
	return out
}

var (
	paramRef  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	quotedKey = regexp.MustCompile(`(?m)"([^"]+)":`)
)

// DebugText returns the query text with every bound parameter inlined as indented JSON.
// The result is for logging only and must not be executed.
func (q *Query) DebugText() string {
	return paramRef.ReplaceAllStringFunc(q.Text(), func(ref string) string {
		v, ok := q.params[ref[1:]]
		if !ok {
			return ref
		}
		raw, err := v.MarshalJSON()
		if err != nil {
			return ref
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return string(raw)
		}
		return out.String()
	})
}

// FormattedDebugText is DebugText with the quotes around object keys removed,
// which reads closer to Cypher map literals.
func (q *Query) FormattedDebugText() string {
	return quotedKey.ReplaceAllString(q.DebugText(), "$1:")
}

// RelationshipPattern renders (from)-[segment]->(to) in the requested direction.
//
// Example:
//
//	RelationshipPattern("person", "personaddress:HOME_ADDRESS", "address", DirectionOut)
//	// Returns: (person)-[personaddress:HOME_ADDRESS]->(address)
func RelationshipPattern(from, segment, to string, direction Direction) string {
	switch direction {
	case DirectionIn:
		return fmt.Sprintf("(%s)<-[%s]-(%s)", from, segment, to)
	case DirectionBoth:
		return fmt.Sprintf("(%s)-[%s]-(%s)", from, segment, to)
	default:
		// Default to "out"
		return fmt.Sprintf("(%s)-[%s]->(%s)", from, segment, to)
	}
}

// SanitizeIdentifier sanitizes a string to be used as a Cypher variable name.
// Removes special characters and ensures valid identifier format.
func SanitizeIdentifier(s string) string {
	// Replace non-alphanumeric characters with empty string
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}

	sanitized := result.String()

	// Ensure it starts with a letter
	if len(sanitized) > 0 && sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = "v" + sanitized
	}

	// Ensure it's not empty
	if sanitized == "" {
		sanitized = "var"
	}

	return sanitized
}
