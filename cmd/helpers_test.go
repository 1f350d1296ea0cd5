package cmd

import (
	"bytes"
	"testing"

	"github.com/pders01/formtree/internal/config"
	"github.com/pders01/formtree/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// setupEnv points configuration at a fresh workspace and the given endpoint
func setupEnv(t *testing.T, endpoint string) *testutil.Workspace {
	t.Helper()

	ws := testutil.NewWorkspace(t)
	t.Cleanup(ws.Cleanup)
	t.Setenv("HOME", ws.Root)

	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults(viper.GetViper())
	viper.Set(config.KeyEndpointURL, endpoint)
	viper.Set(config.KeyCacheDir, ws.CacheDir)
	viper.Set(config.KeySettingsPath, ws.SettingsPath)

	return ws
}

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}
