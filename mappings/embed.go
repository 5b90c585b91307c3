package mappings

import (
	"embed"
)

// Files embeds the bundled entity mapping files.
//
//go:embed *.yaml
var Files embed.FS
