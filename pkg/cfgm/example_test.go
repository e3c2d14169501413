// Author: lwmacct (https://github.com/lwmacct)
package cfgm_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lwmacct/251216-go-ksctl/pkg/cfgm"
)

// Example_defaultPaths 演示 DefaultPaths 的搜索顺序。
func Example_defaultPaths() {
	// 不指定应用名称时，返回基础路径
	paths := cfgm.DefaultPaths()
	fmt.Println("基础路径数量:", len(paths))

	// 指定应用名称时，会包含应用专属配置路径
	paths = cfgm.DefaultPaths("myapp")
	fmt.Println("带应用名路径数量:", len(paths))

	// Output:
	// 基础路径数量: 2
	// 带应用名路径数量: 5
}

// Example_load 演示配置文件不存在时使用默认值。
func Example_load() {
	type Config struct {
		Name  string `json:"name"`
		Debug bool   `json:"debug"`
	}

	var report cfgm.Report
	cfg, err := cfgm.Load(Config{Name: "default-app"},
		cfgm.WithConfigPaths("nonexistent.yaml"),
		cfgm.WithReport(&report),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Name:", cfg.Name)
	fmt.Println("Debug:", cfg.Debug)
	fmt.Println("Found:", report.Found())

	// Output:
	// Name: default-app
	// Debug: false
	// Found: false
}

// Example_load_withOverrides 演示点分 key 覆盖，值按字段类型转换。
func Example_load_withOverrides() {
	type DBConfig struct {
		DSN     string `json:"dsn"`
		MaxOpen int    `json:"max-open"`
	}
	type Config struct {
		DB DBConfig `json:"db"`
	}

	var report cfgm.Report
	cfg, err := cfgm.Load(Config{DB: DBConfig{DSN: "sqlite::memory:", MaxOpen: 1}},
		cfgm.WithConfigPaths("nonexistent.yaml"),
		cfgm.WithOverrides(map[string]string{
			"db.dsn":      "sqlite:ks.db",
			"db.max-open": "4",
			"db.unknown":  "x",
		}),
		cfgm.WithReport(&report),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("DSN:", cfg.DB.DSN)
	fmt.Println("MaxOpen:", cfg.DB.MaxOpen)
	fmt.Println("Unknown:", report.UnknownOverrides)

	// Output:
	// DSN: sqlite:ks.db
	// MaxOpen: 4
	// Unknown: [db.unknown]
}

// Example_load_withJSONConfig 演示根据扩展名选择 JSON 解析器。
func Example_load_withJSONConfig() {
	type Config struct {
		Name  string `json:"name"`
		Debug bool   `json:"debug"`
	}

	dir, err := os.MkdirTemp("", "cfgm-example")
	if err != nil {
		fmt.Println("创建临时目录失败:", err)

		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"name": "json-app", "debug": true}`), 0o600); err != nil {
		fmt.Println("创建临时文件失败:", err)

		return
	}

	cfg, err := cfgm.Load(Config{Name: "default-app"},
		cfgm.WithConfigPaths(path),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Name:", cfg.Name)
	fmt.Println("Debug:", cfg.Debug)

	// Output:
	// Name: json-app
	// Debug: true
}

// Example_marshalYAML 演示以 json tag 为 key 输出 YAML。
func Example_marshalYAML() {
	type LogConfig struct {
		File     string        `json:"file"`
		MaxAge   time.Duration `json:"max-age"`
		Compress bool          `json:"compress"`
	}
	type Config struct {
		Debug bool      `json:"debug"`
		Log   LogConfig `json:"log"`
	}

	out, err := cfgm.MarshalYAML(Config{
		Log: LogConfig{File: "logs/cli.log", MaxAge: 48 * time.Hour},
	})
	if err != nil {
		fmt.Println("编码失败:", err)

		return
	}
	fmt.Print(string(out))

	// Output:
	// debug: false
	// log:
	//   compress: false
	//   file: logs/cli.log
	//   max-age: 48h0m0s
}
