package cfgm

// options 配置加载选项。
type options struct {
	appName             string // 应用名称，用于生成默认配置路径
	configPaths         []string
	configPathsSet      bool   // 显式设置为空时不读取任何文件
	baseDir             string // 路径基准目录，用于将相对路径转换为绝对路径
	baseDirSet          bool   // 是否显式设置了 baseDir（区分空字符串和未设置）
	envPrefix           string
	overrides           map[string]string // 点分 key → 值，最高优先级
	vars                map[string]string // 模板展开的额外变量
	report              *Report
	noTemplateExpansion bool // 是否禁用配置文件模板展开（默认启用）
	callerSkip          int  // FindProjectRoot 的调用栈跳过层数（0 表示使用默认值）
}

// Option 配置加载选项函数。
type Option func(*options)

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
//
// 示例：
//
//	cfgm.Load(defaultConfig,
//	    cfgm.WithAppName("myapp"),  // 自动搜索 .myapp.yaml 等
//	)
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；相对路径会基于 [WithBaseDir] 解析。
// 不传路径时跳过配置文件层。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
		o.configPathsSet = true
	}
}

// WithBaseDir 设置配置路径的解析基准。
//
// 默认基准为项目根目录（go.mod 所在目录）；空字符串表示当前工作目录。
// 注意：绝对路径不受影响。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
		o.baseDirSet = true
	}
}

// WithCallerSkip 设置 [FindProjectRoot] 的调用栈跳过层数。
//
// 当 [Load] 被多层封装时，用于修正项目根目录定位。
// 若已通过 [WithBaseDir] 指定基准目录，则该选项不会生效。
func WithCallerSkip(skip int) Option {
	return func(o *options) {
		o.callerSkip = skip
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "KS_")：
//   - KS_DEBUG → debug
//   - KS_DB_DSN → db.dsn
//   - KS_DB_TABLE_PREFIX → db.table-prefix
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithOverrides 以点分 key 覆盖配置，优先级高于文件与环境变量。
//
// 值为字符串，解码时按字段类型弱类型转换 ("true" → bool, "5" → int)。
// 结构体中不存在的 key 不会写入，会记录到 [Report.UnknownOverrides]。
//
// 示例：
//
//	cfgm.Load(defaultConfig,
//	    cfgm.WithOverrides(map[string]string{"db.dsn": "sqlite:ks.db"}),
//	)
func WithOverrides(overrides map[string]string) Option {
	return func(o *options) {
		o.overrides = overrides
	}
}

// WithTemplateVars 为配置文件模板展开提供额外变量，覆盖同名环境变量。
func WithTemplateVars(vars map[string]string) Option {
	return func(o *options) {
		o.vars = vars
	}
}

// WithReport 在加载结束后将加载细节写入 r。
func WithReport(r *Report) Option {
	return func(o *options) {
		o.report = r
	}
}

// WithoutTemplateExpansion 禁用配置文件的模板展开。
//
// 默认会执行 Shell 参数展开（如 ${VAR:-default}）。
// 该选项会保留原始 ${...} 字符串。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}
