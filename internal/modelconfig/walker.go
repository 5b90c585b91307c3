package modelconfig

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WalkMappings loads every mapping file from the bundled filesystem, then from dir when it is set.
// Entries from dir are appended after the bundled ones, so they win when both map the same type.
func WalkMappings(bundled fs.FS, dir string) ([]*EntityConfig, error) {
	var configs []*EntityConfig

	if bundled != nil {
		loaded, err := walkFS(bundled, ".")
		if err != nil {
			return nil, fmt.Errorf("failed to walk bundled mappings: %w", err)
		}
		slog.Info("loaded bundled entity mappings", "count", len(loaded))
		configs = append(configs, loaded...)
	}

	if dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Warn("mappings directory does not exist", "dir", dir)
			return configs, nil
		}
		loaded, err := walkFS(os.DirFS(dir), ".")
		if err != nil {
			return nil, fmt.Errorf("failed to walk mappings directory %s: %w", dir, err)
		}
		slog.Info("loaded entity mappings from filesystem", "dir", dir, "count", len(loaded))
		configs = append(configs, loaded...)
	}

	return configs, nil
}

func walkFS(fsys fs.FS, root string) ([]*EntityConfig, error) {
	var configs []*EntityConfig

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yaml") && !strings.HasSuffix(d.Name(), ".yml") {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			slog.Error("failed to read mapping file", "path", path, "error", err)
			return err
		}

		entries, err := parseMappingFile(data, path)
		if err != nil {
			slog.Error("failed to parse mapping file", "path", path, "error", err)
			return err
		}

		configs = append(configs, entries...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return configs, nil
}

// parseMappingFile parses and validates one YAML mapping file.
func parseMappingFile(data []byte, path string) ([]*EntityConfig, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %s: %w", path, err)
	}

	seen := make(map[string]bool)
	entries := make([]*EntityConfig, 0, len(file.Entities))
	for i := range file.Entities {
		entry := file.Entities[i]
		entry.Source = path

		if entry.Type == "" {
			return nil, fmt.Errorf("entities[%d]: type is required in %s", i, path)
		}
		if seen[entry.Type] {
			return nil, fmt.Errorf("duplicate entity type '%s' in %s", entry.Type, path)
		}
		seen[entry.Type] = true

		if err := validateMembers(entry); err != nil {
			return nil, fmt.Errorf("entity '%s' in %s: %w", entry.Type, path, err)
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

func validateMembers(entry EntityConfig) error {
	lists := map[string][]string{
		"match":              entry.Match,
		"merge":              entry.Merge,
		"on_create":          entry.OnCreate,
		"on_match":           entry.OnMatch,
		"on_match_or_create": entry.OnMatchOrCreate,
	}
	for name, members := range lists {
		for i, m := range members {
			if strings.TrimSpace(m) == "" {
				return fmt.Errorf("%s[%d] is empty", name, i)
			}
		}
	}
	for member, wire := range entry.WireNames {
		if strings.TrimSpace(member) == "" || strings.TrimSpace(wire) == "" {
			return fmt.Errorf("wire_names entries need a member and a name")
		}
	}
	return nil
}
