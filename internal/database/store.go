// Package database 打开应用数据库并维护 settings 表。
//
// SQLite 使用纯 Go 驱动 modernc.org/sqlite，PostgreSQL 使用 pgx 的 database/sql 适配。
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"
	_ "modernc.org/sqlite"             // database/sql driver "sqlite"

	"github.com/lwmacct/251216-go-ksctl/internal/failure"
)

// CodeInvalidTablePrefix 表名前缀含非法字符。
const CodeInvalidTablePrefix = "invalid_table_prefix"

var prefixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$|^$`)

// Store 应用数据库。
type Store struct {
	db     *sql.DB
	driver string
	prefix string
}

// Option 配置 Store。
type Option func(*Store)

// WithTablePrefix 设置表名前缀。
func WithTablePrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// Open 打开数据源并验证连接。
func Open(ctx context.Context, src Source, opts ...Option) (*Store, error) {
	s := &Store{driver: src.Driver}
	for _, opt := range opts {
		opt(s)
	}
	if !prefixPattern.MatchString(s.prefix) {
		return nil, &failure.DomainFailure{
			Code:    CodeInvalidTablePrefix,
			Message: "table prefix must be a SQL identifier",
			Result:  s.prefix,
		}
	}

	if src.Driver == DriverSQLite && !src.IsMemory() {
		if err := os.MkdirAll(filepath.Dir(src.DSN), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open(src.Driver, src.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", src.Driver, err)
	}
	if src.Driver == DriverSQLite {
		// 内存库按连接隔离
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping %s database: %w", src.Driver, err)
	}
	s.db = db

	return s, nil
}

// Driver 返回驱动名。
func (s *Store) Driver() string { return s.driver }

// Ping 验证连接。
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close 关闭数据库。
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) settingsTable() string {
	return s.prefix + "settings"
}

// placeholder 返回第 n 个 (从 1 开始) 参数占位符。
func (s *Store) placeholder(n int) string {
	if s.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}

	return "?"
}

// Migrate 创建 settings 表。
func (s *Store) Migrate(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		name TEXT PRIMARY KEY,
		value TEXT
	)`, s.settingsTable())
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create %s: %w", s.settingsTable(), err)
	}

	return nil
}

// Set 写入或更新一项设置。
func (s *Store) Set(ctx context.Context, name, value string) error {
	stmt := fmt.Sprintf(
		`INSERT INTO %s (name, value) VALUES (%s, %s) ON CONFLICT (name) DO UPDATE SET value = excluded.value`,
		s.settingsTable(), s.placeholder(1), s.placeholder(2),
	)
	if _, err := s.db.ExecContext(ctx, stmt, name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}

	return nil
}

// Get 读取一项设置，不存在时 ok 为 false。
func (s *Store) Get(ctx context.Context, name string) (value string, ok bool, err error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE name = %s`, s.settingsTable(), s.placeholder(1))

	var v sql.NullString
	err = s.db.QueryRowContext(ctx, query, name).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("get %s: %w", name, err)
	}

	return v.String, true, nil
}
