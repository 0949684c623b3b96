package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setConfigFile sets the package-level configFile and restores it after the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// executeCommand runs the root command with the config file and returns what it printed.
func executeCommand(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	setConfigFile(t, cfgPath)

	var out bytes.Buffer
	rootCommand := newRootCommand()
	rootCommand.SetOut(&out)
	rootCommand.SetErr(&out)
	rootCommand.SetIn(bytes.NewReader(nil))
	rootCommand.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCommand.ExecuteContext(t.Context())
	return out.String(), err
}
