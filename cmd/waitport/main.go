// Command waitport prints the port a process has bound once lsof sees it.
//
//	waitport tcp --pid 1234 --timeout 10s
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/giantswarm/testwait/internal/cli"
)

var version = "dev"

func main() {
	cli.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand()
	rootCmd.SetContext(ctx)
	cli.Execute(rootCmd)
}
