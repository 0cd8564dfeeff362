//go:build tools
// +build tools

// Tool dependencies for this module. Not used at runtime: the blank
// imports pin the binaries invoked via `go generate` (mockgen) so go.mod
// and go.sum carry them and a fresh checkout can regenerate the mocks.
package emergency_hub

import (
	_ "go.uber.org/mock/mockgen"
)
