// Command getopts 打印命令行的解析结果，用于排查参数解析问题。
//
//	go run ./cmd/getopts list users --name=Alice -v -- raw
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lwmacct/251216-go-ksctl/internal/logging"
	"github.com/lwmacct/251216-go-ksctl/pkg/getopts"
)

func main() {
	slog.SetDefault(logging.Bootstrap())

	if err := run(os.Args, os.Stdout, slog.Default()); err != nil {
		slog.Error("Encode result failed", "error", err)
		os.Exit(1)
	}
}

// run 解析 argv 并将结果以缩进 JSON 写入 w。
func run(argv []string, w io.Writer, logger *slog.Logger) error {
	res := getopts.Parse(argv)
	logger.Info("Parsed arguments", "args", res)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	return nil
}
