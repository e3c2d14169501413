package ksctl_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-ksctl/internal/command/ksctl"
	"github.com/lwmacct/251216-go-ksctl/internal/config"
	"github.com/lwmacct/251216-go-ksctl/internal/failure"
)

type invocation struct {
	out    bytes.Buffer
	errOut bytes.Buffer
}

func run(t *testing.T, stdin string, args ...string) (*invocation, error) {
	t.Helper()

	inv := &invocation{}
	cmd := ksctl.New()
	cmd.Reader = strings.NewReader(stdin)
	cmd.Writer = &inv.out
	cmd.ErrWriter = &inv.errOut

	err := cmd.Run(context.Background(), append([]string{"ksctl"}, args...))

	return inv, err
}

func TestCommand_ConfigureThenRun(t *testing.T) {
	root := t.TempDir()
	t.Setenv(config.RootEnv, root)
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	inv, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Empty(t, inv.out.String())
	assert.Contains(t, inv.errOut.String(), "System not configured")

	inv, err = run(t, "secret\n", "system:config", "--config:db.dsn=sqlite:data/ks.db", "--config:db.user=admin")
	require.NoError(t, err)
	assert.Contains(t, inv.errOut.String(), "Enter database password:")
	assert.Contains(t, inv.out.String(), `"path": "`+filepath.Join(root, "config.yaml")+`"`)
	assert.FileExists(t, filepath.Join(root, "config.yaml"))
	assert.FileExists(t, filepath.Join(root, "logs", "cli.log"))

	inv, err = run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, inv.out.String(), `"name": "ksctl"`)

	inv, err = run(t, "", "installer:perform")
	require.NoError(t, err)
	assert.Contains(t, inv.out.String(), `"driver": "sqlite"`)
	assert.FileExists(t, filepath.Join(root, "data", "ks.db"))
}

func TestCommand_FailureExitCode(t *testing.T) {
	root := t.TempDir()
	t.Setenv(config.RootEnv, root)
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := run(t, "", "system:config", "--config:db.dsn=sqlite:ks.db", "--config:db.user=u", "--config:db.password=p")
	require.NoError(t, err)

	inv, err := run(t, "", "system:config", "--config:bogus=1")
	require.Error(t, err)
	assert.Equal(t, 1, failure.ExitCode(err))
	assert.Contains(t, inv.errOut.String(), "Unknown configuration key")
	assert.Contains(t, inv.errOut.String(), "Command failed")

	inv, err = run(t, "", "-v")
	require.NoError(t, err)
	assert.Contains(t, inv.errOut.String(), "No command specified")
}
