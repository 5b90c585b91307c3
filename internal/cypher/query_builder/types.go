package query_builder

import "github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/value"

// ClauseKind is the Cypher keyword a clause is rendered with.
type ClauseKind int

const (
	Match ClauseKind = iota
	OptionalMatch
	Merge
	Create
	OnMatchSet
	OnCreateSet
	Return
)

var clauseKeywords = map[ClauseKind]string{
	Match:         "MATCH",
	OptionalMatch: "OPTIONAL MATCH",
	Merge:         "MERGE",
	Create:        "CREATE",
	OnMatchSet:    "ON MATCH SET",
	OnCreateSet:   "ON CREATE SET",
	Return:        "RETURN",
}

// Keyword returns the leading Cypher keyword(s) for the clause kind.
func (k ClauseKind) Keyword() string {
	return clauseKeywords[k]
}

// Clause is a single line of a query: a keyword followed by free text.
type Clause struct {
	Kind ClauseKind
	Text string
}

func (c Clause) String() string {
	return c.Kind.Keyword() + " " + c.Text
}

// NamedParam binds a value to a $name placeholder.
type NamedParam struct {
	Name  string
	Value value.Value
}

// Fragment is a piece of Cypher text plus the parameters it references.
// A fragment is applied to a Query as a unit.
type Fragment struct {
	Clauses []Clause
	Params  []NamedParam
}

// Add appends a clause to the fragment.
func (f *Fragment) Add(kind ClauseKind, text string) {
	f.Clauses = append(f.Clauses, Clause{Kind: kind, Text: text})
}

// Bind appends a parameter to the fragment.
func (f *Fragment) Bind(name string, v value.Value) {
	f.Params = append(f.Params, NamedParam{Name: name, Value: v})
}

// Direction specifies which way a relationship pattern points: "out", "in", or "both".
type Direction string

const (
	DirectionOut  Direction = "out"
	DirectionIn   Direction = "in"
	DirectionBoth Direction = "both"
)
