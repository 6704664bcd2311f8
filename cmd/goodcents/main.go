package main

import (
	"context"
	"fmt"
	"os"

	"goodcents/internal/cli"
	"goodcents/internal/core"
	"goodcents/internal/log"
)

func main() {
	cli.LoadEnvFile()

	ctx, stop := cli.GracefulShutdown(context.Background(), log.New(log.DefaultConfig()))
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, core.UserMessage(err))
		stop()
		os.Exit(1)
	}
}
