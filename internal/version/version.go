// Package version 提供构建信息，发布时通过 -ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/251216-go-ksctl/internal/version.Version=v1.2.0 \
//	    -X github.com/lwmacct/251216-go-ksctl/internal/version.Revision=$(git rev-parse --short HEAD)"
package version

// AppRawName 应用名称，同时用作配置文件名 (.ksctl.yaml)。
const AppRawName = "ksctl"

var (
	// Version 发布版本号。
	Version = "dev"
	// Revision 源码修订号。
	Revision = "unknown"
)

// GetVersion 返回 "版本 (修订)" 形式的版本字符串。
func GetVersion() string {
	return Version + " (" + Revision + ")"
}
