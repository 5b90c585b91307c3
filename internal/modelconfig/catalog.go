package modelconfig

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrUnknownType is returned when a mapping names a type the catalog does not hold.
var ErrUnknownType = errors.New("unknown entity type")

// Catalog resolves the type names used in mapping files to Go types.
type Catalog struct {
	types map[string]reflect.Type
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]reflect.Type)}
}

// Add registers T under its type name.
func Add[T any](c *Catalog) {
	c.AddType(reflect.TypeFor[T]())
}

// AddType registers t under its type name.
func (c *Catalog) AddType(t reflect.Type) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	c.AddNamed(t.Name(), t)
}

// AddNamed registers t under name.
func (c *Catalog) AddNamed(name string, t reflect.Type) {
	c.types[name] = t
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (reflect.Type, error) {
	t, ok := c.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return t, nil
}

// New returns a pointer to a zero value of the named type.
func (c *Catalog) New(name string) (any, error) {
	t, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	return reflect.New(t).Interface(), nil
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
