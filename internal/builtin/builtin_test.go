package builtin_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-ksctl/internal/builtin"
	"github.com/lwmacct/251216-go-ksctl/internal/config"
	"github.com/lwmacct/251216-go-ksctl/internal/database"
	"github.com/lwmacct/251216-go-ksctl/internal/failure"
	"github.com/lwmacct/251216-go-ksctl/internal/registry"
	"github.com/lwmacct/251216-go-ksctl/pkg/getopts"
)

func setup(t *testing.T) (*registry.Registry, *config.SystemInfo) {
	t.Helper()

	info, err := config.Load(config.LoadOptions{Root: t.TempDir(), ConfigPaths: []string{"config.yaml"}})
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, builtin.Register(reg, builtin.Deps{Info: info}))

	return reg, info
}

func run(t *testing.T, reg *registry.Registry, args ...string) (any, error) {
	t.Helper()

	res := getopts.Tokenize(args)
	name, _, ok := res.Command()
	require.True(t, ok)

	return reg.Execute(context.Background(), name, registry.NewInput(res))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg, info := setup(t)
	assert.Len(t, reg.List(""), 5)
	assert.Len(t, reg.List("system:"), 2)

	require.ErrorIs(t, builtin.Register(reg, builtin.Deps{Info: info}), registry.ErrDuplicate)
}

func TestVersionAndInfo(t *testing.T) {
	t.Parallel()

	reg, info := setup(t)

	out, err := run(t, reg, "version")
	require.NoError(t, err)
	assert.Equal(t, builtin.VersionResult{Name: "ksctl", Version: info.Version, Revision: info.Revision}, out)

	out, err = run(t, reg, "system:info")
	require.NoError(t, err)
	assert.Equal(t, builtin.InfoResult{
		Root:       info.Root,
		Version:    info.Version,
		Revision:   info.Revision,
		ConfigPath: filepath.Join(info.Root, "config.yaml"),
	}, out)
}

func TestSystemConfig(t *testing.T) {
	t.Parallel()

	reg, info := setup(t)

	out, err := run(t, reg, "system:config", "--config:db.dsn=sqlite:ks.db", "--config:debug=true")
	require.NoError(t, err)
	assert.Equal(t, builtin.ConfigResult{
		Path: filepath.Join(info.Root, "config.yaml"),
		Keys: []string{"db.dsn", "debug"},
	}, out)

	assert.True(t, info.ConfigExists)
	assert.True(t, info.Config.Debug)
	assert.Equal(t, "sqlite:ks.db", info.Config.DB.DSN)

	reloaded, err := config.Load(config.LoadOptions{Root: info.Root, ConfigPaths: []string{"config.yaml"}})
	require.NoError(t, err)
	assert.Equal(t, info.Config, reloaded.Config)
}

func TestSystemConfig_Failures(t *testing.T) {
	t.Parallel()

	reg, info := setup(t)

	var cmdErr *failure.CommandFailure

	_, err := run(t, reg, "system:config")
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, cmdErr.Message, "Nothing to configure")

	_, err = run(t, reg, "system:config", "--config:db.host=x")
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, cmdErr.Message, "db.host")

	_, statErr := os.Stat(info.ConfigPath)
	assert.True(t, os.IsNotExist(statErr), "nothing written on failure")
}

func TestInstallerPerform_SQLite(t *testing.T) {
	t.Parallel()

	reg, info := setup(t)

	out, err := run(t, reg, "installer:perform", "--config:db.dsn=sqlite:data/ks.db")
	require.NoError(t, err)

	result, ok := out.(builtin.InstallResult)
	require.True(t, ok)
	assert.Equal(t, database.DriverSQLite, result.Driver)
	assert.Equal(t, info.Version, result.Version)
	_, err = uuid.Parse(result.InstallationID)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(info.Root, "data", "ks.db"))
	assert.FileExists(t, info.ConfigPath)

	again, err := run(t, reg, "installer:perform")
	require.NoError(t, err)
	assert.Equal(t, result.InstallationID, again.(builtin.InstallResult).InstallationID)

	check, err := run(t, reg, "database:check")
	require.NoError(t, err)
	assert.Equal(t, builtin.CheckResult{Driver: database.DriverSQLite, OK: true}, check)
}

func TestDatabaseCheck_Failures(t *testing.T) {
	t.Parallel()

	reg, info := setup(t)

	_, err := run(t, reg, "database:check")
	var cmdErr *failure.CommandFailure
	require.ErrorAs(t, err, &cmdErr)

	info.Config.DB.DSN = "mysql:host=localhost"
	_, err = run(t, reg, "database:check")
	var domain *failure.DomainFailure
	require.ErrorAs(t, err, &domain)
	assert.Equal(t, database.CodeUnsupportedDSN, domain.Code)
}
