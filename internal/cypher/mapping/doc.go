// Package mapping turns plain Go structs into parameterized Cypher MATCH, MERGE and CREATE fragments.
//
// Which fields take part in a clause is decided per entity type and per Purpose. Fields opt in
// with a `cypher` struct tag, or types the caller does not own are configured through the fluent
// API:
//
//	type Person struct {
//		_    struct{} `cypher:"label=SecretAgent"`
//		ID   int      `cypher:"match,merge,oncreate,name=id"`
//		Name string   `cypher:"oncreate,onmatch"`
//	}
//
//	reg := mapping.NewRegistry()
//	m := mapping.NewMapper(reg)
//	q := query_builder.NewQuery()
//	err := m.MergeEntity(q, person, mapping.MergeOptions{})
//	// MERGE (person:SecretAgent {id:$personMatchKey.id})
//	// ON MATCH SET person.name = $personname
//	// ON CREATE SET person = $personOnCreate
//
// The Registry caches the resolved property lists for the life of the process; it is safe for
// concurrent use and is meant to be constructed once and shared.
package mapping
