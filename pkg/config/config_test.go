package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cfgPath = "/home/user/.config/trigram/config.toml"

func TestInitConfigCreatesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := InitConfig(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	exists, err := afero.Exists(fs, cfgPath)
	require.NoError(t, err)
	assert.True(t, exists)

	reloaded, err := LoadConfig(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
[match]
threshold = 0.5

[lexicon]
path = "words.txt"
`
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte(content), 0o644))

	cfg, err := LoadConfig(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Match.Threshold)
	assert.Equal(t, "words.txt", cfg.Lexicon.Path)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	fs := afero.NewMemMapFs()
	// max_results has the wrong type, which fails the typed decode
	content := `
[match]
threshold = 1

[server]
max_results = "lots"
max_haystack = 64
`
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte(content), 0o644))

	cfg, err := LoadConfig(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Match.Threshold)
	assert.Equal(t, 64, cfg.Server.MaxHaystack)
	assert.Equal(t, DefaultConfig().Server.MaxResults, cfg.Server.MaxResults)
}

func TestLoadConfigGarbage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("[[[ not toml"), 0o644))

	cfg, err := LoadConfig(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
[match]
threshold = 1.5
max_needle = -1
`
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte(content), 0o644))

	cfg, err := LoadConfig(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Match, cfg.Match)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvThreshold, "0.42")
	t.Setenv(EnvLexicon, "/srv/words.msgpack")
	t.Setenv(EnvMaxResults, "nope")

	cfg, err := InitConfig(afero.NewMemMapFs(), cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 0.42, cfg.Match.Threshold)
	assert.Equal(t, "/srv/words.msgpack", cfg.Lexicon.Path)
	assert.Equal(t, DefaultConfig().Server.MaxResults, cfg.Server.MaxResults)
}

func TestLoadDotEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("TRIGRAM_MAX_RESULTS=7\nTRIGRAM_THRESHOLD=0.9\n"), 0o644))

	// t.Setenv restores both variables once the test ends
	t.Setenv(EnvMaxResults, "")
	require.NoError(t, os.Unsetenv(EnvMaxResults))
	t.Setenv(EnvThreshold, "0.1")

	require.NoError(t, LoadDotEnv(fs, ".env"))
	cfg, err := InitConfig(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Server.MaxResults)
	assert.Equal(t, 0.1, cfg.Match.Threshold, "variables already set win over the file")

	assert.NoError(t, LoadDotEnv(fs, "missing.env"))
}

func TestUpdate(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := InitConfig(fs, cfgPath)
	require.NoError(t, err)

	th, limit := 0.6, 12
	require.NoError(t, cfg.Update(fs, cfgPath, &th, &limit))

	reloaded, err := LoadConfig(fs, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 0.6, reloaded.Match.Threshold)
	assert.Equal(t, 12, reloaded.Server.MaxResults)
}
