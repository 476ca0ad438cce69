package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brix", "config.yaml")

	in := &Config{
		Version:      "0.1.0",
		ServerURL:    "https://api.brix.kr",
		Username:     "alice",
		CurrentToken: "tok-abc",
	}
	require.NoError(t, in.WriteConfig(path))

	// 0600: the file carries credentials
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, LoadConfig(path))
	out := GetConfig()
	require.NotNil(t, out)
	assert.Equal(t, "https://api.brix.kr", out.ServerURL)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "tok-abc", out.CurrentToken)
}

func TestLoadConfigNormalizesServerURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Config{ServerURL: "api.brix.kr/"}
	require.NoError(t, in.WriteConfig(path))

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "https://api.brix.kr", GetConfig().ServerURL)
}

func TestLoadConfigRequiresServerURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Config{Username: "alice"}
	require.NoError(t, in.WriteConfig(path))

	err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfigEnvOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Config{ServerURL: "https://api.brix.kr", Username: "alice"}
	require.NoError(t, in.WriteConfig(path))

	t.Setenv("BRIX_SERVER", "https://staging.brix.kr")
	t.Setenv("BRIX_USERNAME", "bob")

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "https://staging.brix.kr", GetConfig().ServerURL)
	assert.Equal(t, "bob", GetConfig().Username)
}

func TestLoadConfigMissingFile(t *testing.T) {
	err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestWriteConfigEmptyPath(t *testing.T) {
	cfg := &Config{ServerURL: "https://api.brix.kr"}
	assert.Error(t, cfg.WriteConfig(""))
}
