// Package achievements carries build metadata for the achievements module.
package achievements

// Version is the release version printed by the CLI.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/achievements"
