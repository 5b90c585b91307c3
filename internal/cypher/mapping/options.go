package mapping

// MatchOptions controls MatchEntity and OptionalMatchEntity.
type MatchOptions struct {
	// Identifier overrides the default identifier derived from the type name.
	Identifier string
	// PreCql and PostCql are emitted verbatim around the node pattern.
	PreCql  string
	PostCql string
	// MatchOverride replaces the registry's Match list when non-nil.
	MatchOverride Properties
}

// NewMatchOptions returns options with the given identifier.
func NewMatchOptions(identifier string) MatchOptions {
	return MatchOptions{Identifier: identifier}
}

// WithProperties overrides the Match list.
func (o MatchOptions) WithProperties(props Properties) MatchOptions {
	o.MatchOverride = props
	return o
}

// WithNoProperties renders the node pattern without a property map.
func (o MatchOptions) WithNoProperties() MatchOptions {
	o.MatchOverride = NoProperties()
	return o
}

// CreateOptions controls CreateEntity.
type CreateOptions struct {
	Identifier string
	PreCql     string
	PostCql    string
	// CreateOverride replaces the registry's MergeOnCreate list when non-nil.
	CreateOverride Properties
}

// NewCreateOptions returns options with the given identifier.
func NewCreateOptions(identifier string) CreateOptions {
	return CreateOptions{Identifier: identifier}
}

// WithProperties overrides the create list.
func (o CreateOptions) WithProperties(props Properties) CreateOptions {
	o.CreateOverride = props
	return o
}

// MergeOptions controls MergeEntity.
type MergeOptions struct {
	Identifier string
	PreCql     string
	PostCql    string

	MergeOverride    Properties
	OnMatchOverride  Properties
	OnCreateOverride Properties

	// ViaRelationship merges the entity as the end node of this relationship instead of as a
	// standalone node pattern.
	ViaRelationship Relationship
	// ViaRelationshipLabel adds the entity label to the end node of the relationship pattern.
	ViaRelationshipLabel bool
}

// NewMergeOptions returns options with the given identifier.
func NewMergeOptions(identifier string) MergeOptions {
	return MergeOptions{Identifier: identifier}
}

// MergeOptionsViaRelationship merges through rel, using its ToKey as the identifier.
func MergeOptionsViaRelationship(rel Relationship) MergeOptions {
	return MergeOptions{Identifier: rel.Endpoints().ToKey, ViaRelationship: rel}
}

// WithMergeProperties overrides the Merge list.
func (o MergeOptions) WithMergeProperties(props Properties) MergeOptions {
	o.MergeOverride = props
	return o
}

// WithNoMergeProperties renders the MERGE pattern without a property map.
func (o MergeOptions) WithNoMergeProperties() MergeOptions {
	o.MergeOverride = NoProperties()
	return o
}

// WithOnMatchProperties overrides the MergeOnMatch list.
func (o MergeOptions) WithOnMatchProperties(props Properties) MergeOptions {
	o.OnMatchOverride = props
	return o
}

// WithOnCreateProperties overrides the MergeOnCreate list.
func (o MergeOptions) WithOnCreateProperties(props Properties) MergeOptions {
	o.OnCreateOverride = props
	return o
}

// WithRelationshipLabel labels the end node when merging via a relationship.
func (o MergeOptions) WithRelationshipLabel() MergeOptions {
	o.ViaRelationshipLabel = true
	return o
}

// MatchRelationshipOptions controls MatchRelationship.
type MatchRelationshipOptions struct {
	MatchOverride Properties
}

// WithNoProperties matches on the relationship type alone.
func (o MatchRelationshipOptions) WithNoProperties() MatchRelationshipOptions {
	o.MatchOverride = NoProperties()
	return o
}

// CreateRelationshipOptions controls CreateRelationship.
type CreateRelationshipOptions struct {
	CreateOverride Properties
}

// MergeRelationshipOptions controls MergeRelationship.
type MergeRelationshipOptions struct {
	MergeOverride    Properties
	OnMatchOverride  Properties
	OnCreateOverride Properties
}

// WithNoMergeProperties merges on the relationship type alone.
func (o MergeRelationshipOptions) WithNoMergeProperties() MergeRelationshipOptions {
	o.MergeOverride = NoProperties()
	return o
}
