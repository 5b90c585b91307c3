package modelconfig

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
)

// Apply commits each entry to reg through the fluent API, one Set per entry.
func Apply(reg *mapping.Registry, catalog *Catalog, configs []*EntityConfig) error {
	cfg := mapping.Config(reg)

	for _, entry := range configs {
		t, err := catalog.Lookup(entry.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Source, err)
		}

		builder := cfg.For(t, entry.Label)
		for member, wire := range entry.WireNames {
			builder.WireName(member, wire)
		}
		for _, m := range entry.Match {
			builder.Match(m)
		}
		for _, m := range entry.Merge {
			builder.Merge(m)
		}
		for _, m := range entry.OnCreate {
			builder.MergeOnCreate(m)
		}
		for _, m := range entry.OnMatch {
			builder.MergeOnMatch(m)
		}
		for _, m := range entry.OnMatchOrCreate {
			builder.MergeOnMatchOrCreate(m)
		}

		registrations, err := builder.Set()
		if err != nil {
			return fmt.Errorf("%s: entity '%s': %w", entry.Source, entry.Type, err)
		}
		slog.Debug("applied entity mapping", "type", entry.Type, "source", entry.Source, "purposes", len(registrations), "mapping", reg.Describe(t))
	}
	return nil
}

// Load walks bundled and dir, then applies every entry to reg.
func Load(reg *mapping.Registry, catalog *Catalog, bundled fs.FS, dir string) error {
	configs, err := WalkMappings(bundled, dir)
	if err != nil {
		return err
	}
	return Apply(reg, catalog, configs)
}
