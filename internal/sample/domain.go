// Package sample holds a small secret-agent domain used by the entity tools, the bundled
// mapping files and the tests.
package sample

import (
	"fmt"
	"strconv"
	"time"
)

// Gender is stored as its name.
type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return "Gender(" + strconv.Itoa(int(g)) + ")"
	}
}

// Person is configured fluently in ConfigureModel and stored with the SecretAgent label.
type Person struct {
	ID                    int
	Name                  string
	Sex                   Gender
	Title                 *string
	HomeAddress           *Address
	WorkAddress           *Address
	IsOperative           bool
	SerialNumber          int
	SpendingAuthorisation float64
	DateCreated           time.Time
}

// Address is configured fluently in ConfigureModel.
type Address struct {
	Street string
	Suburb *string
}

// Area is a blast radius in square metres, written as text.
type Area float64

// MarshalText renders the area with its unit.
func (a Area) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%gm²", float64(a))), nil
}

// Weapon is mapped with struct tags only.
type Weapon struct {
	_           struct{} `cypher:"label=Weapon"`
	ID          int      `cypher:"match,merge,oncreate,name=id"`
	Name        string   `cypher:"oncreate,onmatch"`
	BlastRadius Area     `cypher:"oncreate,onmatch"`
}
