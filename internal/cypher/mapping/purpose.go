package mapping

import (
	"fmt"
	"strings"
)

// Purpose classifies the role a property plays in a generated clause.
type Purpose int

const (
	// PurposeMatch properties identify an entity in MATCH patterns.
	PurposeMatch Purpose = iota
	// PurposeMerge properties identify an entity in MERGE patterns.
	PurposeMerge
	// PurposeMergeOnCreate properties are written when MERGE creates the entity, and by CREATE.
	PurposeMergeOnCreate
	// PurposeMergeOnMatch properties are written when MERGE finds an existing entity.
	PurposeMergeOnMatch
)

// Purposes lists every purpose in declaration order.
var Purposes = []Purpose{PurposeMatch, PurposeMerge, PurposeMergeOnCreate, PurposeMergeOnMatch}

// Tag option names for each purpose.
const (
	tagName    = "cypher"
	tagMatch   = "match"
	tagMerge   = "merge"
	tagCreate  = "oncreate"
	tagOnMatch = "onmatch"
	tagLabel   = "label="
	tagWire    = "name="
)

func (p Purpose) String() string {
	switch p {
	case PurposeMatch:
		return tagMatch
	case PurposeMerge:
		return tagMerge
	case PurposeMergeOnCreate:
		return tagCreate
	case PurposeMergeOnMatch:
		return tagOnMatch
	default:
		return fmt.Sprintf("Purpose(%d)", int(p))
	}
}

// ParsePurpose accepts the tag spelling of a purpose ("match", "merge", "oncreate", "onmatch").
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case tagMatch:
		return PurposeMatch, nil
	case tagMerge:
		return PurposeMerge, nil
	case tagCreate, "on_create", "mergeoncreate":
		return PurposeMergeOnCreate, nil
	case tagOnMatch, "on_match", "mergeonmatch":
		return PurposeMergeOnMatch, nil
	default:
		return 0, fmt.Errorf("unknown purpose %q", s)
	}
}

// fieldTag is the parsed form of a `cypher:"..."` struct tag.
type fieldTag struct {
	purposes map[Purpose]bool
	wireName string
	label    string
}

func parseTag(tag string) fieldTag {
	parsed := fieldTag{purposes: make(map[Purpose]bool)}
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "":
		case strings.HasPrefix(opt, tagLabel):
			parsed.label = strings.TrimPrefix(opt, tagLabel)
		case strings.HasPrefix(opt, tagWire):
			parsed.wireName = strings.TrimPrefix(opt, tagWire)
		default:
			if p, err := ParsePurpose(opt); err == nil {
				parsed.purposes[p] = true
			}
		}
	}
	return parsed
}
