// Package casing converts Go member names into the property names written to the graph.
package casing

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// Policy selects how a member name is rendered as an on-wire property name.
type Policy int

const (
	// None leaves the name untouched. It is the zero value, so an unset policy is a passthrough.
	None Policy = iota
	// Pascal is an alias of None: Go exported names are already PascalCase.
	Pascal
	// CamelCase lower-cases the first character only ("FirstName" -> "firstName", "ID" -> "iD").
	CamelCase
	// SnakeCase separates words with underscores ("FirstName" -> "first_name").
	SnakeCase
	// KebabCase separates words with dashes ("FirstName" -> "first-name").
	KebabCase
)

func (p Policy) String() string {
	switch p {
	case None:
		return "none"
	case Pascal:
		return "pascal"
	case CamelCase:
		return "camel"
	case SnakeCase:
		return "snake"
	case KebabCase:
		return "kebab"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a configuration string onto a Policy. The empty string yields None.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "pascal", "pascalcase":
		return Pascal, nil
	case "camel", "camelcase":
		return CamelCase, nil
	case "snake", "snakecase", "snake_case":
		return SnakeCase, nil
	case "kebab", "kebabcase", "kebab-case":
		return KebabCase, nil
	default:
		return None, fmt.Errorf("unknown casing policy %q", s)
	}
}

// Apply renders name according to policy. It is pure: the same input always yields the same output.
func Apply(name string, policy Policy) string {
	if name == "" {
		return ""
	}
	switch policy {
	case CamelCase:
		return lowerFirst(name)
	case SnakeCase:
		return inflect.Underscore(name)
	case KebabCase:
		return inflect.Dasherize(name)
	default:
		return name
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
