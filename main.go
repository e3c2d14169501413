package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lwmacct/251216-go-ksctl/internal/command/ksctl"
	"github.com/lwmacct/251216-go-ksctl/internal/failure"
	"github.com/lwmacct/251216-go-ksctl/internal/logging"
)

func main() {
	slog.SetDefault(logging.Bootstrap())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := ksctl.Command.Run(ctx, os.Args)
	stop()

	os.Exit(failure.ExitCode(err))
}
