package docs

import (
	_ "embed"
)

// MappingGuidePrompt explains how mapped entities become Cypher and which tool fits which task.
//
//go:embed prompts/mapping_guide.md
var MappingGuidePrompt string
