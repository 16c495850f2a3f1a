package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/cmd/buytoken"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/platform/config"
)

func main() {
	cfg, err := buytoken.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buytoken.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("buy token: %v", err)
	}
}
