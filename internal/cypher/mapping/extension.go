package mapping

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	qb "github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/query_builder"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/value"
)

// Mapper appends entity-derived clauses and parameters to a query.
type Mapper struct {
	registry *Registry
}

// NewMapper returns a Mapper backed by reg.
func NewMapper(reg *Registry) *Mapper {
	return &Mapper{registry: reg}
}

// Registry returns the registry the mapper reads from.
func (m *Mapper) Registry() *Registry {
	return m.registry
}

func (m *Mapper) resolve(t reflect.Type, p Purpose, override Properties) Properties {
	if override != nil {
		return override
	}
	return m.registry.PropertiesForPurpose(t, p)
}

// MatchEntity appends MATCH (<pre>(identifier:Label {...})<post>) and binds <identifier>MatchKey.
func (m *Mapper) MatchEntity(q *qb.Query, e any, opts MatchOptions) error {
	f, err := m.BuildMatch(e, opts)
	if err != nil {
		return err
	}
	return m.apply(q, "match entity", f)
}

// OptionalMatchEntity is MatchEntity with OPTIONAL MATCH.
func (m *Mapper) OptionalMatchEntity(q *qb.Query, e any, opts MatchOptions) error {
	f, err := m.buildMatch(e, opts, qb.OptionalMatch)
	if err != nil {
		return err
	}
	return m.apply(q, "optional match entity", f)
}

// BuildMatch renders the MATCH fragment without applying it to a query.
func (m *Mapper) BuildMatch(e any, opts MatchOptions) (qb.Fragment, error) {
	return m.buildMatch(e, opts, qb.Match)
}

func (m *Mapper) buildMatch(e any, opts MatchOptions, kind qb.ClauseKind) (qb.Fragment, error) {
	var f qb.Fragment
	ent, err := inspect(e)
	if err != nil {
		return f, err
	}

	identifier := IdentifierFor(ent.t, opts.Identifier)
	props := m.resolve(ent.t, PurposeMatch, opts.MatchOverride)
	param := matchParamName(identifier)

	payload, err := ent.object(props, false)
	if err != nil {
		return f, err
	}

	f.Add(kind, wrap(opts.PreCql, pattern(identifier, m.registry.LabelFor(ent.t), props, param), opts.PostCql))
	f.Bind(param, value.FromObject(payload))
	return f, nil
}

// CreateEntity appends CREATE (<pre>(identifier:Label $identifier)<post>), binding the entity's
// create properties with null values left out.
func (m *Mapper) CreateEntity(q *qb.Query, e any, opts CreateOptions) error {
	f, err := m.BuildCreate(e, opts)
	if err != nil {
		return err
	}
	return m.apply(q, "create entity", f)
}

// BuildCreate renders the CREATE fragment without applying it to a query.
func (m *Mapper) BuildCreate(e any, opts CreateOptions) (qb.Fragment, error) {
	var f qb.Fragment
	ent, err := inspect(e)
	if err != nil {
		return f, err
	}

	identifier := IdentifierFor(ent.t, opts.Identifier)
	props := m.resolve(ent.t, PurposeMergeOnCreate, opts.CreateOverride)

	payload, err := ent.object(props, true)
	if err != nil {
		return f, err
	}

	inner := aliasLabel(identifier, m.registry.LabelFor(ent.t)) + " $" + identifier
	f.Add(qb.Create, wrap(opts.PreCql, inner, opts.PostCql))
	f.Bind(identifier, value.FromObject(payload))
	return f, nil
}

// MergeEntity appends a MERGE clause followed by ON MATCH SET and ON CREATE SET clauses.
//
// One ON MATCH SET is emitted per on-match property, bound as <identifier><wireName>. A single
// ON CREATE SET <identifier> = $<identifier>OnCreate is emitted when the on-create list is
// non-empty; its payload also carries the merge keys.
func (m *Mapper) MergeEntity(q *qb.Query, e any, opts MergeOptions) error {
	f, err := m.BuildMerge(e, opts)
	if err != nil {
		return err
	}
	return m.apply(q, "merge entity", f)
}

// BuildMerge renders the MERGE fragment without applying it to a query.
func (m *Mapper) BuildMerge(e any, opts MergeOptions) (qb.Fragment, error) {
	var f qb.Fragment
	ent, err := inspect(e)
	if err != nil {
		return f, err
	}

	identifier := IdentifierFor(ent.t, opts.Identifier)
	if opts.ViaRelationship != nil {
		// the merged node is the relationship's end node, so the SET clauses must use its key
		to := opts.ViaRelationship.Endpoints().ToKey
		if to == "" {
			return f, fmt.Errorf("%w: merging %s via a relationship needs its end key", ErrMissingKey, ent.t)
		}
		if opts.Identifier != "" && opts.Identifier != to {
			return f, fmt.Errorf("%w: identifier %q, relationship end %q", ErrIdentifierMismatch, opts.Identifier, to)
		}
		identifier = to
	}
	label := m.registry.LabelFor(ent.t)

	var text string
	if opts.ViaRelationship != nil {
		base := opts.ViaRelationship.Endpoints()
		to := base.ToKey
		if opts.ViaRelationshipLabel {
			to = aliasLabel(to, label)
		}
		segment := aliasLabel("", m.registry.Label(opts.ViaRelationship))
		text = opts.PreCql + qb.RelationshipPattern(base.FromKey, segment, to, base.Direction) + opts.PostCql
	} else {
		props := m.resolve(ent.t, PurposeMerge, opts.MergeOverride)
		text = wrap(opts.PreCql, pattern(identifier, label, props, matchParamName(identifier)), opts.PostCql)
	}

	err = m.commonMerge(&f, ent, identifier, text, opts.ViaRelationship == nil, opts.MergeOverride, opts.OnMatchOverride, opts.OnCreateOverride)
	return f, err
}

// commonMerge emits the MERGE clause and its SET clauses. bindMatchKey is false when text does not
// reference <key>MatchKey.
func (m *Mapper) commonMerge(f *qb.Fragment, ent entity, key, text string, bindMatchKey bool, mergeOverride, onMatchOverride, onCreateOverride Properties) error {
	mergeProps := m.resolve(ent.t, PurposeMerge, mergeOverride)
	onMatchProps := m.resolve(ent.t, PurposeMergeOnMatch, onMatchOverride)
	onCreateProps := m.resolve(ent.t, PurposeMergeOnCreate, onCreateOverride)

	f.Add(qb.Merge, text)
	if bindMatchKey {
		mergePayload, err := ent.object(mergeProps, false)
		if err != nil {
			return err
		}
		f.Bind(matchParamName(key), value.FromObject(mergePayload))
	}

	if key == "" && (len(onMatchProps) > 0 || len(onCreateProps) > 0) {
		return fmt.Errorf("%w to set properties on %s", ErrMissingKey, ent.t)
	}

	names := newParamSet(matchParamName(key), onCreateParamName(key))
	for _, p := range onMatchProps {
		v, err := ent.read(p)
		if err != nil {
			return err
		}
		param := names.unique(onMatchParamName(key, p.WireName))
		f.Add(qb.OnMatchSet, setPropertyParam(key, p.WireName, param))
		f.Bind(param, v)
	}

	if len(onCreateProps) > 0 {
		payload, err := ent.object(Union(onCreateProps, mergeProps), false)
		if err != nil {
			return err
		}
		param := onCreateParamName(key)
		f.Add(qb.OnCreateSet, setParam(key, param))
		f.Bind(param, value.FromObject(payload))
	}
	return nil
}

// MatchRelationship appends MATCH (from)-[key:LABEL {...}]->(to) and binds <key>MatchKey.
func (m *Mapper) MatchRelationship(q *qb.Query, rel Relationship, opts MatchRelationshipOptions) error {
	f, err := m.buildMatchRelationship(rel, opts, qb.Match)
	if err != nil {
		return err
	}
	return m.apply(q, "match relationship", f)
}

// OptionalMatchRelationship is MatchRelationship with OPTIONAL MATCH.
func (m *Mapper) OptionalMatchRelationship(q *qb.Query, rel Relationship, opts MatchRelationshipOptions) error {
	f, err := m.buildMatchRelationship(rel, opts, qb.OptionalMatch)
	if err != nil {
		return err
	}
	return m.apply(q, "optional match relationship", f)
}

func (m *Mapper) buildMatchRelationship(rel Relationship, opts MatchRelationshipOptions, kind qb.ClauseKind) (qb.Fragment, error) {
	var f qb.Fragment
	ent, err := inspect(rel)
	if err != nil {
		return f, err
	}

	base := rel.Endpoints()
	props := m.resolve(ent.t, PurposeMatch, opts.MatchOverride)
	param := matchParamName(base.Key)
	segment := pattern(base.Key, m.registry.LabelFor(ent.t), props, param)

	f.Add(kind, qb.RelationshipPattern(base.FromKey, segment, base.ToKey, base.Direction))
	if len(props) > 0 {
		payload, err := ent.object(props, false)
		if err != nil {
			return f, err
		}
		f.Bind(param, value.FromObject(payload))
	}
	return f, nil
}

// CreateRelationship appends CREATE (from)-[key:LABEL $key]->(to). The parameter is only bound
// when the relationship has non-null create properties.
func (m *Mapper) CreateRelationship(q *qb.Query, rel Relationship, opts CreateRelationshipOptions) error {
	var f qb.Fragment
	ent, err := inspect(rel)
	if err != nil {
		return err
	}

	base := rel.Endpoints()
	props := m.resolve(ent.t, PurposeMergeOnCreate, opts.CreateOverride)
	payload, err := ent.object(props, true)
	if err != nil {
		return err
	}

	segment := aliasLabel(base.Key, m.registry.LabelFor(ent.t))
	if payload.Len() > 0 {
		if base.Key == "" {
			return fmt.Errorf("%w to create properties on %s", ErrMissingKey, ent.t)
		}
		segment += " $" + base.Key
		f.Bind(base.Key, value.FromObject(payload))
	}
	f.Add(qb.Create, qb.RelationshipPattern(base.FromKey, segment, base.ToKey, base.Direction))
	return m.apply(q, "create relationship", f)
}

// MergeRelationship appends MERGE (from)-[key:LABEL {...}]->(to) with the same ON MATCH SET and
// ON CREATE SET handling as MergeEntity.
func (m *Mapper) MergeRelationship(q *qb.Query, rel Relationship, opts MergeRelationshipOptions) error {
	var f qb.Fragment
	ent, err := inspect(rel)
	if err != nil {
		return err
	}

	base := rel.Endpoints()
	props := m.resolve(ent.t, PurposeMerge, opts.MergeOverride)
	segment := pattern(base.Key, m.registry.LabelFor(ent.t), props, matchParamName(base.Key))
	text := qb.RelationshipPattern(base.FromKey, segment, base.ToKey, base.Direction)

	if err := m.commonMerge(&f, ent, base.Key, text, len(props) > 0, opts.MergeOverride, opts.OnMatchOverride, opts.OnCreateOverride); err != nil {
		return err
	}
	return m.apply(q, "merge relationship", f)
}

// UseProperties builds an override list from field names of e's type, applying the registry's
// naming policy (or a `name=` tag option).
func (m *Mapper) UseProperties(e any, names ...string) (Properties, error) {
	t := indirect(reflect.TypeOf(e))
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %v", ErrNotStruct, t)
	}
	props := make(Properties, 0, len(names))
	for _, name := range names {
		p, err := m.registry.property(t, name)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props.Dedupe(), nil
}

// ToCypherString renders identifier:Label {...} for e using the list for purpose, or override
// when non-nil. Useful for hand-written clauses that reuse the entity's pattern.
func (m *Mapper) ToCypherString(e any, purpose Purpose, identifier string, override Properties) (string, error) {
	ent, err := inspect(e)
	if err != nil {
		return "", err
	}
	identifier = IdentifierFor(ent.t, identifier)
	props := m.resolve(ent.t, purpose, override)
	return pattern(identifier, m.registry.LabelFor(ent.t), props, matchParamName(identifier)), nil
}

// property resolves a Go field name to a Property using tags and the naming policy.
func (r *Registry) property(t reflect.Type, name string) (Property, error) {
	name = strings.TrimSpace(name)
	sf, ok := t.FieldByName(name)
	if !ok {
		return Property{}, &PropertyError{Type: t, Property: name, Err: ErrPropertyNotFound}
	}
	if !sf.IsExported() {
		return Property{}, &PropertyError{Type: t, Property: name, Err: ErrPropertyNotExported}
	}
	return Property{Name: sf.Name, WireName: r.wireName(sf, parseTag(sf.Tag.Get(tagName)))}, nil
}

func (m *Mapper) apply(q *qb.Query, op string, f qb.Fragment) error {
	if err := q.Apply(f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	slog.Debug("applied cypher fragment", "op", op, "clauses", len(f.Clauses), "params", len(f.Params))
	return nil
}
