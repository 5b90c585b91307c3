package sample

import (
	"fmt"
	"time"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
)

// ConfigureModel registers the Person, Address and HomeAddressRelationship mappings. Weapon and
// the remaining relationships rely on their struct tags.
func ConfigureModel(reg *mapping.Registry) error {
	cfg := mapping.Config(reg)

	if _, err := mapping.With[Person](cfg, "SecretAgent").
		WireName("ID", "id").
		Match("ID").
		Merge("ID").
		MergeOnCreate("ID").
		MergeOnCreate("DateCreated").
		MergeOnMatchOrCreate("Title").
		MergeOnMatchOrCreate("Name").
		MergeOnMatchOrCreate("IsOperative").
		MergeOnMatchOrCreate("Sex").
		MergeOnMatchOrCreate("SerialNumber").
		MergeOnMatchOrCreate("SpendingAuthorisation").
		Set(); err != nil {
		return fmt.Errorf("configure person: %w", err)
	}

	if _, err := mapping.With[Address](cfg, "").
		MergeOnMatchOrCreate("Street").
		MergeOnMatchOrCreate("Suburb").
		Set(); err != nil {
		return fmt.Errorf("configure address: %w", err)
	}

	if _, err := mapping.With[HomeAddressRelationship](cfg, "").
		Match("DateEffective").
		MergeOnMatchOrCreate("DateEffective").
		Set(); err != nil {
		return fmt.Errorf("configure home address relationship: %w", err)
	}

	return nil
}

var sampleDate = time.Date(2015, 7, 11, 8, 0, 0, 0, time.FixedZone("AEST", 10*60*60))

// WellKnownPerson returns Sterling Archer with the given id.
func WellKnownPerson(id int) *Person {
	return &Person{
		ID:                    id,
		Name:                  "Sterling Archer",
		Sex:                   Male,
		HomeAddress:           WellKnownAddress("200 Isis Street"),
		WorkAddress:           WellKnownAddress("59 Isis Street"),
		IsOperative:           true,
		SerialNumber:          123456,
		SpendingAuthorisation: 100.23,
		DateCreated:           sampleDate,
	}
}

// WellKnownAddress returns an address in Fakeville.
func WellKnownAddress(street string) *Address {
	suburb := "Fakeville"
	return &Address{Street: street, Suburb: &suburb}
}

// WellKnownWeapon returns the Grenade with the given id.
func WellKnownWeapon(id int) *Weapon {
	return &Weapon{ID: id, Name: "Grenade", BlastRadius: 20}
}
