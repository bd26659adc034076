package config

import (
	"context"

	"github.com/grindlemire/graft"
)

// SettingsNodeID is the unique identifier for the Settings Graft node.
const SettingsNodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Settings, error) {
			return LoadSettings(SettingsFilename)
		},
	})
}
