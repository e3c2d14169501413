package builtin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lwmacct/251216-go-ksctl/internal/config"
	"github.com/lwmacct/251216-go-ksctl/internal/database"
	"github.com/lwmacct/251216-go-ksctl/internal/failure"
	"github.com/lwmacct/251216-go-ksctl/internal/registry"
)

// settings 表中的键。
const (
	SettingInstallationID = "installation_id"
	SettingVersion        = "version"
)

// InstallResult installer:perform 命令的结果。
type InstallResult struct {
	InstallationID string `json:"installation_id"`
	Version        string `json:"version"`
	Driver         string `json:"driver"`
}

func (d Deps) installerPerform(ctx context.Context, in *registry.Input) (any, error) {
	if values := in.Options.Nested(ConfigOption); len(values) > 0 {
		if err := d.writeConfig(values); err != nil {
			return nil, err
		}
	}

	store, err := openStore(ctx, d.Info)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	id, ok, err := store.Get(ctx, SettingInstallationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		id = uuid.NewString()
		if err := store.Set(ctx, SettingInstallationID, id); err != nil {
			return nil, err
		}
	}
	if err := store.Set(ctx, SettingVersion, d.Info.Version); err != nil {
		return nil, err
	}
	d.logger().Info("Installation complete", "installation_id", id, "driver", store.Driver())

	return InstallResult{
		InstallationID: id,
		Version:        d.Info.Version,
		Driver:         store.Driver(),
	}, nil
}

// CheckResult database:check 命令的结果。
type CheckResult struct {
	Driver string `json:"driver"`
	OK     bool   `json:"ok"`
}

func (d Deps) databaseCheck(ctx context.Context, _ *registry.Input) (any, error) {
	store, err := openStore(ctx, d.Info)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return CheckResult{Driver: store.Driver(), OK: true}, nil
}

func openStore(ctx context.Context, info *config.SystemInfo) (*database.Store, error) {
	db := info.Config.DB
	if db.DSN == "" {
		return nil, failure.Commandf("Database not configured, set db.dsn with 'system:config'")
	}

	src, err := database.ParseDSN(db.DSN, db.User, db.Password)
	if err != nil {
		return nil, err
	}

	return database.Open(ctx, src.Resolve(info.Root), database.WithTablePrefix(db.TablePrefix))
}
