package stateprop

import _ "embed"

// Version is the release of the library and the stateprop CLI.
//
//go:embed VERSION
var Version string
