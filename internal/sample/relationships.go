package sample

import (
	"time"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
)

// HomeAddressRelationship links a person to their home address.
type HomeAddressRelationship struct {
	mapping.BaseRelationship
	_             struct{} `cypher:"label=HOME_ADDRESS"`
	DateEffective time.Time
}

// NewHomeAddressRelationship connects from and to with the default key.
func NewHomeAddressRelationship(from, to string) *HomeAddressRelationship {
	return &HomeAddressRelationship{BaseRelationship: mapping.NewRelationship(from, to)}
}

// WorkAddressRelationship links a person to their work address. It has no properties.
type WorkAddressRelationship struct {
	mapping.BaseRelationship
	_ struct{} `cypher:"label=WORK_ADDRESS"`
}

// NewWorkAddressRelationship connects from and to with the default key.
func NewWorkAddressRelationship(from, to string) *WorkAddressRelationship {
	return &WorkAddressRelationship{BaseRelationship: mapping.NewRelationship(from, to)}
}

// CheckedOutRelationship links an agent to a weapon.
type CheckedOutRelationship struct {
	mapping.BaseRelationship
	_ struct{} `cypher:"label=HAS_CHECKED_OUT"`
}

// NewCheckedOutRelationship connects agent to weapon.
func NewCheckedOutRelationship() *CheckedOutRelationship {
	return &CheckedOutRelationship{BaseRelationship: mapping.NewRelationship("agent", "weapon")}
}

// WorksForRelationship links a person to an organisation, with their role.
type WorksForRelationship struct {
	mapping.BaseRelationship
	_    struct{} `cypher:"label=WORKS_FOR"`
	Role string   `cypher:"match,merge,oncreate,onmatch"`
}

// NewWorksForRelationship connects person to organisation.
func NewWorksForRelationship(role string) *WorksForRelationship {
	return &WorksForRelationship{BaseRelationship: mapping.NewRelationship("person", "organisation"), Role: role}
}
