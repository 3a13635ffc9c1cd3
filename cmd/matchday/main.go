package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	matchdaycmd "github.com/louisbranch/matchday/internal/cmd/matchday"
	"github.com/louisbranch/matchday/internal/platform/config"
)

func main() {
	cfg, err := matchdaycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[MATCHDAY] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := matchdaycmd.Run(ctx, cfg); err != nil {
		config.Exitf("simulation failed: %v", err)
	}
}
