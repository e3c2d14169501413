package getopts_test

import (
	"encoding/json"
	"fmt"

	"github.com/lwmacct/251216-go-ksctl/pkg/getopts"
)

// Example_parse 演示 argv[0] 被丢弃后的四桶归类。
func Example_parse() {
	res := getopts.Parse([]string{"ksctl", "-v", "--name=Alice", "extra1", "extra2"})

	fmt.Println("commands:", res.Commands)
	fmt.Println("flags:", res.Flags)
	fmt.Println("name:", res.Options.String("name"))

	// Output:
	// commands: [extra1 extra2]
	// flags: [v]
	// name: Alice
}

// Example_nested 演示 name:key=value 语法在同名下累积。
func Example_nested() {
	res := getopts.Tokenize([]string{"system:config", "--config:db.dsn=host", "--config:db.user=admin"})

	out, _ := json.Marshal(res)
	fmt.Println(string(out))

	// Output:
	// {"commands":["system:config"],"options":{"config":{"db.dsn":"host","db.user":"admin"}},"flags":[],"arguments":[]}
}
