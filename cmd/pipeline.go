package cmd

import (
	"github.com/pders01/formtree/internal/bundle"
	"github.com/pders01/formtree/internal/config"
	"github.com/pders01/formtree/internal/fetch"
	"github.com/pders01/formtree/internal/remote"
	"github.com/pders01/formtree/internal/settings"
	"github.com/pders01/formtree/internal/store"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func openStore() *store.Store {
	return store.NewOS(config.GetCacheDir(), logger)
}

func openBundle() *bundle.Bundle {
	if path := config.GetBundlePath(); path != "" {
		return bundle.FromFile(afero.NewOsFs(), path)
	}
	return bundle.Embedded()
}

func openSettings() *settings.Settings {
	return settings.NewOS(config.GetSettingsPath())
}

// newPipeline wires the fetch pipeline from configuration. The simulation
// mode, when enabled, is read from settings here and only here.
func newPipeline(simulate bool) *fetch.Pipeline {
	opts := []fetch.Option{fetch.WithLogger(logger)}

	if simulate || config.GetSimulationEnabled() {
		mode, err := openSettings().LoadSimulation()
		if err != nil {
			logger.Warn("failed to read simulation setting, using default",
				zap.String("mode", string(mode)), zap.Error(err))
		}
		opts = append(opts, fetch.WithSimulation(mode))
	}

	return fetch.New(remote.NewClient(config.GetEndpointURL()), openStore(), openBundle(), opts...)
}
