package main

import (
	"flag"
	"os"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/cmd/listaccounts"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/platform/config"
)

func main() {
	cfg, err := listaccounts.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := listaccounts.Run(cfg, os.Stdout); err != nil {
		config.Exitf("list accounts: %v", err)
	}
}
