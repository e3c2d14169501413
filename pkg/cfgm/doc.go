// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与覆盖值逐层合并。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. 覆盖值 - 通过 [WithOverrides] 传入点分 key，最高优先级
//
// # 快速开始
//
// 定义配置结构体（json 标签即配置 key）：
//
//	type Config struct {
//	    Debug bool     `json:"debug"`
//	    DB    DBConfig `json:"db"`
//	}
//
// 加载：
//
//	var report cfgm.Report
//	cfg, err := cfgm.Load(DefaultConfig(),
//	    cfgm.WithAppName("ksctl"),
//	    cfgm.WithBaseDir(root),
//	    cfgm.WithEnvPrefix("KS_"),
//	    cfgm.WithOverrides(map[string]string{"db.dsn": "sqlite:ks.db"}),
//	    cfgm.WithReport(&report),
//	)
//
// report.Path 为命中的配置文件，未命中时为空。
//
// # 配置文件路径
//
// [WithAppName] 会生成默认搜索路径（见 [DefaultPaths]）：
//   - .ksctl.yaml (当前目录)
//   - ~/.ksctl.yaml (用户主目录)
//   - /etc/ksctl/config.yaml (系统配置)
//   - config.yaml, config/config.yaml (通用路径)
//
// 相对路径基于 [WithBaseDir]，未设置时基于 [FindProjectRoot]。
//
// # 环境变量(前缀)
//
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "KS_")：KS_DB_DSN → db.dsn
//
// # 模板展开
//
// 配置文件在解析前执行 Shell 参数展开（见 templexp 包），
// 可用 [WithTemplateVars] 注入额外变量，使用 [WithoutTemplateExpansion] 禁用。
//
//	# config.yaml
//	db:
//	  dsn: "sqlite:${KS_ROOT}/data/ks.db"
//	  password: "${KS_DB_PASSWORD:?db password required}"
//
// # 写回配置
//
// [WriteFile] 以与加载相同的 key 写出 YAML/JSON：
//
//	err := cfgm.WriteFile(report.Path, cfg)
//
// [UpdateFile] 只改写给出的 key，文件中的 ${VAR} 引用原样保留，
// 环境变量绑定的值也不会被写入文件：
//
//	err := cfgm.UpdateFile[Config](report.Path, map[string]string{"log.format": "json"})
package cfgm
