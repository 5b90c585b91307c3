package modelconfig

// File is the top-level shape of a mapping YAML file.
type File struct {
	Entities []EntityConfig `yaml:"entities"`
}

// EntityConfig maps one Go type. Member names are Go field names.
type EntityConfig struct {
	// Type is the catalog name of the Go type (e.g. "Person").
	Type string `yaml:"type"`

	// Label replaces the type's label when non-blank.
	Label string `yaml:"label,omitempty"`

	Match           []string `yaml:"match,omitempty"`
	Merge           []string `yaml:"merge,omitempty"`
	OnCreate        []string `yaml:"on_create,omitempty"`
	OnMatch         []string `yaml:"on_match,omitempty"`
	OnMatchOrCreate []string `yaml:"on_match_or_create,omitempty"`

	// WireNames overrides the property key of individual members.
	WireNames map[string]string `yaml:"wire_names,omitempty"`

	// Source is the file the entry was read from.
	Source string `yaml:"-"`
}
