package mapping

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/casing"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/query_builder"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type typeKey struct {
	t reflect.Type
	p Purpose
}

func (k typeKey) flightKey() string {
	return k.t.PkgPath() + "|" + k.t.String() + "|" + k.p.String()
}

// Registry maps entity types to their per-purpose property lists and labels.
//
// Lists are discovered from `cypher` struct tags the first time a (type, purpose) pair is asked
// for, and explicit registrations replace whatever was discovered. A Registry is safe for
// concurrent use.
type Registry struct {
	policy casing.Policy

	mu         sync.RWMutex
	properties map[typeKey]Properties
	labels     map[reflect.Type]string

	group singleflight.Group
}

// Option configures a Registry.
type Option func(*Registry)

// WithNamingPolicy sets the casing applied to field names when deriving wire names.
func WithNamingPolicy(p casing.Policy) Option {
	return func(r *Registry) {
		r.policy = p
	}
}

// NewRegistry creates an empty registry. The naming policy defaults to camelCase.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		policy:     casing.CamelCase,
		properties: make(map[typeKey]Properties),
		labels:     make(map[reflect.Type]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NamingPolicy returns the casing policy used for discovered wire names.
func (r *Registry) NamingPolicy() casing.Policy {
	return r.policy
}

// PropertiesOf is the generic form of Registry.PropertiesForPurpose.
func PropertiesOf[T any](r *Registry, p Purpose) Properties {
	return r.PropertiesForPurpose(reflect.TypeFor[T](), p)
}

// PropertiesForPurpose returns the property list for the type and purpose, discovering it from
// struct tags on first use. Types that carry no tags yield an empty list.
func (r *Registry) PropertiesForPurpose(t reflect.Type, p Purpose) Properties {
	t = indirect(t)
	if t == nil {
		return Properties{}
	}
	key := typeKey{t: t, p: p}

	if props, ok := r.lookup(key); ok {
		return props.clone()
	}

	_, _, _ = r.group.Do(key.flightKey(), func() (any, error) {
		if _, ok := r.lookup(key); !ok {
			r.storeIfAbsent(key, r.discover(t, p))
		}
		return nil, nil
	})

	props, ok := r.lookup(key)
	if !ok {
		props = r.storeIfAbsent(key, r.discover(t, p))
	}
	return props.clone()
}

// RegisterProperties replaces the list for the type and purpose.
func (r *Registry) RegisterProperties(t reflect.Type, p Purpose, props Properties) {
	r.register(indirect(t), map[Purpose]Properties{p: props}, "")
}

// register commits several purposes and an optional label for one type in a single critical section.
func (r *Registry) register(t reflect.Type, byPurpose map[Purpose]Properties, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p, props := range byPurpose {
		if props == nil {
			props = Properties{}
		}
		r.properties[typeKey{t: t, p: p}] = props.clone()
	}
	if label != "" {
		r.labels[t] = label
	}
}

func (r *Registry) lookup(key typeKey) (Properties, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	props, ok := r.properties[key]
	return props, ok
}

func (r *Registry) storeIfAbsent(key typeKey, props Properties) Properties {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.properties[key]; ok {
		return existing
	}
	r.properties[key] = props
	slog.Debug("discovered cypher properties", "type", key.t.String(), "purpose", key.p.String(), "count", len(props))
	return props
}

func (r *Registry) discover(t reflect.Type, p Purpose) Properties {
	props := Properties{}
	if t.Kind() != reflect.Struct {
		return props
	}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag, ok := f.Tag.Lookup(tagName)
		if !ok {
			continue
		}
		parsed := parseTag(tag)
		if !parsed.purposes[p] {
			continue
		}
		props = append(props, Property{Name: f.Name, WireName: r.wireName(f, parsed)})
	}
	return props.Dedupe()
}

func (r *Registry) wireName(f reflect.StructField, parsed fieldTag) string {
	if parsed.wireName != "" {
		return parsed.wireName
	}
	return casing.Apply(f.Name, r.policy)
}

// Label returns the label for the entity's type.
func (r *Registry) Label(entity any) string {
	return r.LabelFor(reflect.TypeOf(entity))
}

// LabelFor returns the registered label for the type, falling back to a `label=` option on a
// blank field and then to the type name. The label is used verbatim, so callers may pass
// multi-label or backtick-escaped text.
func (r *Registry) LabelFor(t reflect.Type) string {
	t = indirect(t)
	if t == nil {
		return ""
	}

	r.mu.RLock()
	label, ok := r.labels[t]
	r.mu.RUnlock()
	if ok {
		return label
	}

	label = discoverLabel(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.labels[t]; ok {
		return existing
	}
	r.labels[t] = label
	return label
}

// RegisterLabel replaces the label for the type. Blank labels are ignored.
func (r *Registry) RegisterLabel(t reflect.Type, label string) {
	if strings.TrimSpace(label) == "" {
		return
	}
	r.register(indirect(t), nil, label)
}

func discoverLabel(t reflect.Type) string {
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Name != "_" {
				continue
			}
			if label := parseTag(f.Tag.Get(tagName)).label; label != "" {
				return label
			}
		}
	}
	return t.Name()
}

// Identifier returns override when it is non-empty, else the lower-cased type name.
func (r *Registry) Identifier(entity any, override string) string {
	return IdentifierFor(reflect.TypeOf(entity), override)
}

// IdentifierFor is Identifier for a reflect.Type.
func IdentifierFor(t reflect.Type, override string) string {
	if override != "" {
		return override
	}
	t = indirect(t)
	if t == nil {
		return ""
	}
	return query_builder.SanitizeIdentifier(cases.Lower(language.Und).String(t.Name()))
}

// Types returns every type with a cached property list or label, sorted by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	seen := make(map[reflect.Type]struct{})
	for k := range r.properties {
		seen[k.t] = struct{}{}
	}
	for t := range r.labels {
		seen[t] = struct{}{}
	}
	r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Describe renders the mapping of a type for logs and diagnostics.
func (r *Registry) Describe(t reflect.Type) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s :%s", indirect(t), r.LabelFor(t))
	for _, p := range Purposes {
		fmt.Fprintf(&b, " %s=%v", p, r.PropertiesForPurpose(t, p).WireNames())
	}
	return b.String()
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
