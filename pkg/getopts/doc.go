// Package getopts 将原始命令行参数归类为四个桶。
//
//   - commands  - 不以 "-" 开头的位置参数，第一个为命令名
//   - options   - 以 "--" 开头的命名选项
//   - flags     - 以单个 "-" 开头的短 flag，每个字符一个
//   - arguments - "--" 之后的全部 token，原样保留
//
// # 选项语法
//
//	--force                  → force: true (KindPresent)
//	--name=Alice             → name: "Alice"
//	--name Alice Smith       → name: "Alice Smith" (连续非 "-" token 以空格拼接)
//	--config:db.dsn=host     → config: {db.dsn: "host"} (同名多次出现时累积)
//	--mode:fast              → mode: "fast"
//
// 名称中出现 ":" 时总是按第一个 ":" 切分，即使 "=" 在它之前：
// --a=b:c 得到 "a=b": "c"。
//
// 短 flag 从不带值：-abc 总是得到 a、b、c 三个 flag。
//
// # 结束标记
//
// 单独的 "--" 之后不再做任何归类：
//
//	ksctl run -- --not-an-option -x
//
// 得到 arguments = ["--not-an-option", "-x"]。
//
// 解析是纯函数，对任何输入都不会返回错误。
package getopts
