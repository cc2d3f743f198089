package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/zhubert/cardtray/cmd"
)

// Version information set via ldflags at build time
var version = "dev"

func main() {
	root := cmd.NewRootCmd(version)

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
