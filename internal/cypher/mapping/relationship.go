package mapping

import "github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/query_builder"

// BaseRelationship carries the identifiers a relationship connects. Embed it in relationship
// structs; the embedded field is never treated as a property.
type BaseRelationship struct {
	// FromKey is the identifier of the start node.
	FromKey string
	// ToKey is the identifier of the end node.
	ToKey string
	// Key is the identifier of the relationship itself.
	Key string
	// Direction defaults to outgoing.
	Direction query_builder.Direction
}

// NewRelationship connects from and to, using from+to as the relationship key.
func NewRelationship(from, to string) BaseRelationship {
	return NewKeyedRelationship(from+to, from, to)
}

// NewKeyedRelationship connects from and to with an explicit relationship key.
func NewKeyedRelationship(key, from, to string) BaseRelationship {
	return BaseRelationship{FromKey: from, ToKey: to, Key: key, Direction: query_builder.DirectionOut}
}

// Endpoints implements Relationship.
func (b BaseRelationship) Endpoints() BaseRelationship {
	return b
}

// Relationship is implemented by any struct embedding BaseRelationship.
type Relationship interface {
	Endpoints() BaseRelationship
}
