package mapping

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrPropertyNotFound means a registered or overridden property does not exist on the entity type.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrPropertyNotExported means the named field exists but cannot be read.
	ErrPropertyNotExported = errors.New("property not exported")
	// ErrNotStruct is returned for entities that are not structs or pointers to structs.
	ErrNotStruct = errors.New("entity must be a struct or a pointer to a struct")
	// ErrNilEntity is returned for nil entities.
	ErrNilEntity = errors.New("entity is nil")
	// ErrMissingKey is returned when a relationship without a key needs one to bind parameters.
	ErrMissingKey = errors.New("relationship key is required")
	// ErrIdentifierMismatch is returned when a via-relationship merge names a different identifier
	// than the relationship's end node.
	ErrIdentifierMismatch = errors.New("identifier does not match the relationship end node")
)

// PropertyError reports a mismatch between a property list and the runtime type it was applied to.
// It usually means a stale registration or a typo in an override.
type PropertyError struct {
	Type     reflect.Type
	Property string
	Err      error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s: property %q: %v", e.Type, e.Property, e.Err)
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}
