package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251216-go-ksctl/internal/config"
)

func TestLoad_WithoutConfigFile(t *testing.T) {
	root := t.TempDir()

	info, err := config.Load(config.LoadOptions{Root: root, ConfigPaths: []string{"config.yaml"}})
	require.NoError(t, err)

	assert.False(t, info.ConfigExists)
	assert.Equal(t, filepath.Join(root, "config.yaml"), info.ConfigPath)
	assert.Equal(t, config.DefaultConfig(), info.Config)
	assert.Equal(t, root, info.Root)
}

func TestLoad_RootFromEnvAndOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv(config.RootEnv, root)
	t.Setenv("KS_LOG_FORMAT", "json")
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte(`
debug: true
db:
  dsn: "sqlite:${KS_ROOT}/ks.db"
`), 0o600))

	info, err := config.Load(config.LoadOptions{
		ConfigPaths: []string{"config.yaml"},
		Overrides:   map[string]string{"db.user": "admin", "db.port": "1"},
	})
	require.NoError(t, err)

	assert.True(t, info.ConfigExists)
	assert.Equal(t, filepath.Join(root, "config.yaml"), info.ConfigPath)
	assert.True(t, info.Config.Debug)
	assert.Equal(t, "sqlite:"+root+"/ks.db", info.Config.DB.DSN)
	assert.Equal(t, "admin", info.Config.DB.User)
	assert.Equal(t, "json", info.Config.Log.Format)
	assert.Equal(t, []string{"db.port"}, info.UnknownOverrides)
}

func TestSystemInfo_ApplyAndUpdate(t *testing.T) {
	root := t.TempDir()
	info, err := config.Load(config.LoadOptions{Root: root, ConfigPaths: []string{"config.yaml"}})
	require.NoError(t, err)

	values := map[string]string{
		"db.dsn":       "sqlite:ks.db",
		"log.max-size": "64",
		"db.bogus":     "x",
	}
	cfg, unknown, err := info.Apply(values)
	require.NoError(t, err)
	assert.Equal(t, []string{"db.bogus"}, unknown)
	assert.Equal(t, "sqlite:ks.db", cfg.DB.DSN)
	assert.Equal(t, 64, cfg.Log.MaxSize)
	assert.Empty(t, info.Config.DB.DSN, "Apply must not modify the receiver")

	unknown, err = info.Update(values)
	require.NoError(t, err)
	assert.Equal(t, []string{"db.bogus"}, unknown)
	assert.False(t, info.ConfigExists)
	assert.NoFileExists(t, info.ConfigPath)

	delete(values, "db.bogus")
	unknown, err = info.Update(values)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.True(t, info.ConfigExists)
	assert.Equal(t, cfg, info.Config)

	reloaded, err := config.Load(config.LoadOptions{Root: root, ConfigPaths: []string{"config.yaml"}})
	require.NoError(t, err)
	assert.True(t, reloaded.ConfigExists)
	assert.Equal(t, cfg, reloaded.Config)
}

func TestSystemInfo_UpdateKeepsTemplatesAndEnvOutOfFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  dsn: sqlite:ks.db
  password: ${PW}
log:
  format: text
`), 0o600))
	t.Setenv("PW", "tmpl-secret")
	t.Setenv("KS_DB_USER", "env-only-user")

	info, err := config.Load(config.LoadOptions{Root: root, ConfigPaths: []string{"config.yaml"}})
	require.NoError(t, err)
	require.Equal(t, "tmpl-secret", info.Config.DB.Password)
	require.Equal(t, "env-only-user", info.Config.DB.User)

	unknown, err := info.Update(map[string]string{"log.format": "json"})
	require.NoError(t, err)
	require.Empty(t, unknown)
	assert.Equal(t, "json", info.Config.Log.Format)
	assert.Equal(t, "tmpl-secret", info.Config.DB.Password)

	var written map[string]any
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yamlv3.Unmarshal(content, &written))
	assert.Equal(t, map[string]any{
		"db":  map[string]any{"dsn": "sqlite:ks.db", "password": "${PW}"},
		"log": map[string]any{"format": "json"},
	}, written)

	reloaded, err := config.Load(config.LoadOptions{Root: root, ConfigPaths: []string{"config.yaml"}})
	require.NoError(t, err)
	assert.Equal(t, "tmpl-secret", reloaded.Config.DB.Password)
	assert.Equal(t, "json", reloaded.Config.Log.Format)
}

func TestSystemInfo_Path(t *testing.T) {
	info := &config.SystemInfo{Root: "/srv/ks"}

	assert.Equal(t, "/srv/ks/logs/cli.log", info.Path("logs/cli.log"))
	assert.Equal(t, "/var/log/ks.log", info.Path("/var/log/ks.log"))
	assert.Empty(t, info.Path(""))
}
