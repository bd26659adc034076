package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spvbuild/spvbuild/internal/adapters/cache"  //nolint:depguard // Wired in app layer
	"github.com/spvbuild/spvbuild/internal/adapters/config" //nolint:depguard // Wired in app layer
	"github.com/spvbuild/spvbuild/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"github.com/spvbuild/spvbuild/internal/core/ports"
	"github.com/spvbuild/spvbuild/internal/engine/installer"
	"github.com/spvbuild/spvbuild/internal/engine/orchestrator"
	"github.com/spvbuild/spvbuild/internal/ui"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			installer.NodeID,
			orchestrator.NodeID,
			cache.NodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			inst, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}
			orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(inst, orch, store, settings, ui.New(nil)), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}
