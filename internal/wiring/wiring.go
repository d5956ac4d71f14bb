// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/burrow/internal/adapters/config"
	_ "go.trai.ch/burrow/internal/adapters/fs"
	_ "go.trai.ch/burrow/internal/adapters/installer"
	_ "go.trai.ch/burrow/internal/adapters/logger"
	_ "go.trai.ch/burrow/internal/adapters/prefix"
	_ "go.trai.ch/burrow/internal/adapters/repodata"
	_ "go.trai.ch/burrow/internal/adapters/solver"
	_ "go.trai.ch/burrow/internal/adapters/telemetry"
	_ "go.trai.ch/burrow/internal/adapters/virtual"
	// Register app and engine nodes.
	_ "go.trai.ch/burrow/internal/app"
	_ "go.trai.ch/burrow/internal/engine/locator"
	_ "go.trai.ch/burrow/internal/engine/resolver"
)
