package database

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lwmacct/251216-go-ksctl/internal/failure"
)

// 支持的 database/sql 驱动名。
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// CodeUnsupportedDSN 无法识别的数据源。
const CodeUnsupportedDSN = "unsupported_dsn"

// memoryPath SQLite 内存数据库。
const memoryPath = ":memory:"

// Source 解析后的数据源。
type Source struct {
	Driver string
	// DSN 传给 sql.Open 的连接串
	DSN string
}

// ParseDSN 将配置中的数据源转换为 Go 驱动可用的 Source。
//
// 支持的形式：
//   - sqlite:<path> 与 sqlite::memory:
//   - pgsql:host=..;port=..;dbname=..，user / password 参数合并进连接串
//   - postgres:// 与 postgresql:// URL，user / password 非空时覆盖 URL 中的凭据
func ParseDSN(dsn, user, password string) (Source, error) {
	scheme, rest, _ := strings.Cut(dsn, ":")

	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3":
		if rest == "" {
			return Source{}, unsupported(dsn, "missing sqlite path")
		}

		return Source{Driver: DriverSQLite, DSN: rest}, nil

	case "pgsql":
		conn, err := pgsqlConnString(rest, user, password)
		if err != nil {
			return Source{}, unsupported(dsn, err.Error())
		}

		return validatePostgres(dsn, conn)

	case "postgres", "postgresql":
		if !strings.HasPrefix(rest, "//") {
			return Source{}, unsupported(dsn, "expected "+scheme+"://")
		}
		if user == "" && password == "" {
			return validatePostgres(dsn, dsn)
		}

		return validatePostgresURL(dsn, user, password)

	default:
		return Source{}, unsupported(dsn, "unknown driver "+scheme)
	}
}

// Resolve 将相对的 SQLite 文件路径解析到 root 下，其它 Source 原样返回。
func (s Source) Resolve(root string) Source {
	if s.Driver != DriverSQLite || s.IsMemory() || filepath.IsAbs(s.DSN) || strings.HasPrefix(s.DSN, "file:") {
		return s
	}
	s.DSN = filepath.Join(root, s.DSN)

	return s
}

// IsMemory 报告是否为 SQLite 内存数据库。
func (s Source) IsMemory() bool {
	return s.Driver == DriverSQLite && s.DSN == memoryPath
}

func unsupported(dsn, reason string) error {
	return &failure.DomainFailure{
		Code:    CodeUnsupportedDSN,
		Message: "unsupported database DSN: " + reason,
		Result:  redact(dsn),
	}
}

// pgsqlConnString 将 "host=a;port=5432;dbname=ks" 转为 pgx 的 keyword/value 连接串。
func pgsqlConnString(params, user, password string) (string, error) {
	var parts []string
	for param := range strings.SplitSeq(params, ";") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}

		key, val, ok := strings.Cut(param, "=")
		if !ok {
			return "", fmt.Errorf("malformed parameter %q", param)
		}
		parts = append(parts, keyword(strings.TrimSpace(key), strings.TrimSpace(val)))
	}
	if len(parts) == 0 {
		return "", errors.New("missing pgsql parameters")
	}
	if user != "" {
		parts = append(parts, keyword("user", user))
	}
	if password != "" {
		parts = append(parts, keyword("password", password))
	}

	return strings.Join(slices.DeleteFunc(parts, func(s string) bool { return s == "" }), " "), nil
}

// keyword 按 libpq 规则引用 key='value'，值为空时返回空串。
func keyword(key, val string) string {
	if val == "" {
		return ""
	}
	val = strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(val)

	return key + "='" + val + "'"
}

func validatePostgres(dsn, conn string) (Source, error) {
	if _, err := pgx.ParseConfig(conn); err != nil {
		return Source{}, unsupported(dsn, err.Error())
	}

	return Source{Driver: DriverPostgres, DSN: conn}, nil
}

func validatePostgresURL(dsn, user, password string) (Source, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return Source{}, unsupported(dsn, err.Error())
	}
	if user == "" && u.User != nil {
		user = u.User.Username()
	}
	if password == "" && u.User != nil {
		password, _ = u.User.Password()
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}

	return validatePostgres(dsn, u.String())
}

// redact 去掉 URL 中的密码。
func redact(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	if name, _, hasPassword := strings.Cut(creds, ":"); hasPassword {
		return scheme + "://" + name + ":xxxxx@" + host
	}

	return dsn
}
