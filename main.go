package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/crashlens/crashlens/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		slog.Error("crashlens failed", "error", err)
		os.Exit(1)
	}
}
