// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/spvbuild/spvbuild/internal/adapters/cache"
	_ "github.com/spvbuild/spvbuild/internal/adapters/config"
	_ "github.com/spvbuild/spvbuild/internal/adapters/logger"
	_ "github.com/spvbuild/spvbuild/internal/adapters/shell"
	_ "github.com/spvbuild/spvbuild/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/spvbuild/spvbuild/internal/app"
	_ "github.com/spvbuild/spvbuild/internal/engine/installer"
	_ "github.com/spvbuild/spvbuild/internal/engine/orchestrator"
)
