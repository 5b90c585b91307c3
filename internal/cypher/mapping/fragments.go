package mapping

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/query_builder"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/value"
)

const (
	matchKeySuffix = "MatchKey"
	onCreateSuffix = "OnCreate"
)

var plainName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func matchParamName(identifier string) string {
	return identifier + matchKeySuffix
}

func onCreateParamName(identifier string) string {
	return identifier + onCreateSuffix
}

func onMatchParamName(identifier, wireName string) string {
	return identifier + query_builder.SanitizeIdentifier(wireName)
}

// paramSet hands out parameter names that are unique within one fragment. A taken name gets a
// numeric suffix, e.g. personfirstname_2.
type paramSet map[string]struct{}

func newParamSet(reserved ...string) paramSet {
	s := make(paramSet, len(reserved))
	for _, name := range reserved {
		s[name] = struct{}{}
	}
	return s
}

func (s paramSet) unique(name string) string {
	candidate := name
	for i := 2; ; i++ {
		if _, taken := s[candidate]; !taken {
			s[candidate] = struct{}{}
			return candidate
		}
		candidate = name + "_" + strconv.Itoa(i)
	}
}

// propertyKey backtick-quotes wire names that are not plain identifiers, e.g. kebab-case keys.
func propertyKey(wireName string) string {
	if plainName.MatchString(wireName) {
		return wireName
	}
	return "`" + strings.ReplaceAll(wireName, "`", "``") + "`"
}

func aliasLabel(alias, label string) string {
	if label == "" {
		return alias
	}
	return alias + ":" + label
}

// propertyMap renders {w1:$param.w1,w2:$param.w2}. An empty list renders nothing.
func propertyMap(props Properties, paramName string) string {
	if len(props) == 0 {
		return ""
	}
	parts := make([]string, len(props))
	for i, p := range props {
		key := propertyKey(p.WireName)
		parts[i] = key + ":$" + paramName + "." + key
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// pattern renders "alias:Label {map}", dropping the map when props is empty.
func pattern(alias, label string, props Properties, paramName string) string {
	head := aliasLabel(alias, label)
	if m := propertyMap(props, paramName); m != "" {
		return head + " " + m
	}
	return head
}

func wrap(pre, inner, post string) string {
	return pre + "(" + inner + ")" + post
}

func setParam(alias, paramName string) string {
	return alias + " = $" + paramName
}

func setPropertyParam(alias, wireName, paramName string) string {
	return alias + "." + propertyKey(wireName) + " = $" + paramName
}

// entity is a dereferenced struct value with its type.
type entity struct {
	t reflect.Type
	v reflect.Value
}

func inspect(e any) (entity, error) {
	if e == nil {
		return entity{}, ErrNilEntity
	}
	rv := reflect.ValueOf(e)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return entity{}, ErrNilEntity
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return entity{}, fmt.Errorf("%w: got %s", ErrNotStruct, rv.Type())
	}
	return entity{t: rv.Type(), v: rv}, nil
}

func (e entity) field(name string) (reflect.Value, error) {
	sf, ok := e.t.FieldByName(name)
	if !ok {
		return reflect.Value{}, &PropertyError{Type: e.t, Property: name, Err: ErrPropertyNotFound}
	}
	if !sf.IsExported() {
		return reflect.Value{}, &PropertyError{Type: e.t, Property: name, Err: ErrPropertyNotExported}
	}
	fv, err := e.v.FieldByIndexErr(sf.Index)
	if err != nil {
		// nil embedded pointer on the path
		return reflect.Value{}, nil
	}
	return fv, nil
}

func (e entity) read(p Property) (value.Value, error) {
	fv, err := e.field(p.Name)
	if err != nil {
		return value.Null(), err
	}
	if !fv.IsValid() {
		return value.Null(), nil
	}
	v, err := value.FromReflect(fv)
	if err != nil {
		return value.Null(), &PropertyError{Type: e.t, Property: p.Name, Err: err}
	}
	return v, nil
}

// object reads props into an ordered map keyed by wire name.
func (e entity) object(props Properties, ignoreNulls bool) (*value.Object, error) {
	obj := value.NewObject()
	for _, p := range props {
		v, err := e.read(p)
		if err != nil {
			return nil, err
		}
		if ignoreNulls && v.IsNull() {
			continue
		}
		obj.Set(p.WireName, v)
	}
	return obj, nil
}
