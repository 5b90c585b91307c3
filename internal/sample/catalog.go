package sample

import "github.com/mkd-neo4j/neo4j-cypher-extension/internal/modelconfig"

// Catalog returns the sample types under their Go names.
func Catalog() *modelconfig.Catalog {
	c := modelconfig.NewCatalog()
	modelconfig.Add[Person](c)
	modelconfig.Add[Address](c)
	modelconfig.Add[Weapon](c)
	modelconfig.Add[HomeAddressRelationship](c)
	modelconfig.Add[WorkAddressRelationship](c)
	modelconfig.Add[CheckedOutRelationship](c)
	modelconfig.Add[WorksForRelationship](c)
	return c
}
