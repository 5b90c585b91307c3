package mapping

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/casing"
)

// FluentConfig registers mappings for types that cannot carry struct tags.
type FluentConfig struct {
	registry *Registry
	policy   casing.Policy
}

// Config starts a fluent configuration against reg using its naming policy.
func Config(reg *Registry) *FluentConfig {
	return &FluentConfig{registry: reg, policy: reg.NamingPolicy()}
}

// WithNamingPolicy derives wire names for subsequent builders with p instead of the registry policy.
func (c *FluentConfig) WithNamingPolicy(p casing.Policy) *FluentConfig {
	return &FluentConfig{registry: c.registry, policy: p}
}

// Registration describes one committed (type, purpose) list.
type Registration struct {
	Type       reflect.Type
	Purpose    Purpose
	Properties Properties
}

type fluentEntry struct {
	purpose Purpose
	member  string
}

// ConfigWith accumulates property registrations for one type. Nothing reaches the registry until
// Set is called. A ConfigWith is not safe for concurrent use.
type ConfigWith struct {
	config    *FluentConfig
	t         reflect.Type
	label     string
	entries   []fluentEntry
	wireNames map[string]string
}

// With starts a builder for T. A non-blank label replaces the label of T on Set.
func With[T any](c *FluentConfig, label string) *ConfigWith {
	return c.For(reflect.TypeFor[T](), label)
}

// For starts a builder for t, for callers that only know the type at runtime.
func (c *FluentConfig) For(t reflect.Type, label string) *ConfigWith {
	return &ConfigWith{config: c, t: indirect(t), label: strings.TrimSpace(label), wireNames: make(map[string]string)}
}

func (w *ConfigWith) add(member string, purposes ...Purpose) *ConfigWith {
	for _, p := range purposes {
		w.entries = append(w.entries, fluentEntry{purpose: p, member: strings.TrimSpace(member)})
	}
	return w
}

// Match adds member to the Match list.
func (w *ConfigWith) Match(member string) *ConfigWith {
	return w.add(member, PurposeMatch)
}

// Merge adds member to the Merge list.
func (w *ConfigWith) Merge(member string) *ConfigWith {
	return w.add(member, PurposeMerge)
}

// MergeOnCreate adds member to the MergeOnCreate list.
func (w *ConfigWith) MergeOnCreate(member string) *ConfigWith {
	return w.add(member, PurposeMergeOnCreate)
}

// MergeOnMatch adds member to the MergeOnMatch list.
func (w *ConfigWith) MergeOnMatch(member string) *ConfigWith {
	return w.add(member, PurposeMergeOnMatch)
}

// MergeOnMatchOrCreate adds member to both the MergeOnMatch and MergeOnCreate lists.
func (w *ConfigWith) MergeOnMatchOrCreate(member string) *ConfigWith {
	return w.add(member, PurposeMergeOnMatch, PurposeMergeOnCreate)
}

// WireName writes member as wire instead of the policy-cased field name.
func (w *ConfigWith) WireName(member, wire string) *ConfigWith {
	w.wireNames[strings.TrimSpace(member)] = wire
	return w
}

// Set validates every member against T and commits the accumulated lists, grouped by purpose and
// deduplicated by wire name, in one step. Purposes that were never mentioned keep their current
// registration. On error nothing is committed.
func (w *ConfigWith) Set() ([]Registration, error) {
	t := w.t
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %v", ErrNotStruct, t)
	}

	byPurpose := make(map[Purpose]Properties)
	for _, e := range w.entries {
		sf, ok := t.FieldByName(e.member)
		if !ok {
			return nil, &PropertyError{Type: t, Property: e.member, Err: ErrPropertyNotFound}
		}
		if !sf.IsExported() {
			return nil, &PropertyError{Type: t, Property: e.member, Err: ErrPropertyNotExported}
		}
		byPurpose[e.purpose] = append(byPurpose[e.purpose], Property{Name: sf.Name, WireName: w.wireName(sf)})
	}

	registrations := make([]Registration, 0, len(byPurpose))
	for _, p := range Purposes {
		props, ok := byPurpose[p]
		if !ok {
			continue
		}
		props = props.Dedupe()
		byPurpose[p] = props
		registrations = append(registrations, Registration{Type: t, Purpose: p, Properties: props.clone()})
	}

	w.config.registry.register(t, byPurpose, w.label)
	slog.Debug("registered cypher mapping", "type", t.String(), "label", w.label, "purposes", len(registrations))
	return registrations, nil
}

func (w *ConfigWith) wireName(sf reflect.StructField) string {
	if wire, ok := w.wireNames[sf.Name]; ok && wire != "" {
		return wire
	}
	if parsed := parseTag(sf.Tag.Get(tagName)); parsed.wireName != "" {
		return parsed.wireName
	}
	return casing.Apply(sf.Name, w.config.policy)
}
