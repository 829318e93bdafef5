// Package cli implements the waitport command line.
//
// waitport waits until a process has bound a TCP or UDP port on the wildcard
// address and prints the port, for shell scripts that start a server on port
// 0 and need to learn where it ended up.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/giantswarm/testwait"
)

// Version is set from main at build time.
var Version = "dev"

type flags struct {
	pid     int
	timeout time.Duration
	lsof    string
	debug   bool
}

// NewRootCommand returns the waitport command with its tcp and udp
// subcommands. opts are applied to every discovery after the flags, so tests
// can replace the lsof runner and clock.
func NewRootCommand(opts ...testwait.BindOption) *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "waitport",
		Short: "Wait for a process to bind a port and print it",
		Long: `waitport polls lsof until the process given by --pid has bound exactly one
IPv4 port of the chosen protocol on the wildcard address, then prints that
port on stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if f.debug {
				level = slog.LevelDebug
			}
			testwait.SetLogger(slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
				Level:      level,
				TimeFormat: time.TimeOnly,
			})))
		},
	}

	rootCmd.PersistentFlags().IntVar(&f.pid, "pid", 0, "process to inspect (required)")
	rootCmd.PersistentFlags().DurationVar(&f.timeout, "timeout", testwait.DefaultBindTimeout, "how long to keep polling")
	rootCmd.PersistentFlags().StringVar(&f.lsof, "lsof", testwait.DefaultLsofBinary, "lsof binary name or path")
	rootCmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "log every lsof attempt to stderr")

	rootCmd.AddCommand(newBindCommand(f, testwait.TCP, opts))
	rootCmd.AddCommand(newBindCommand(f, testwait.UDP, opts))

	return rootCmd
}

func newBindCommand(f *flags, p testwait.Protocol, opts []testwait.BindOption) *cobra.Command {
	return &cobra.Command{
		Use:   p.String(),
		Short: fmt.Sprintf("Wait for an IPv4 %s port", p),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.pid <= 0 {
				return fmt.Errorf("--pid must be a positive process id, got %d", f.pid)
			}
			if f.lsof == "" {
				return fmt.Errorf("--lsof must not be empty")
			}
			all := append([]testwait.BindOption{testwait.WithLsofBinary(f.lsof)}, opts...)

			port, err := testwait.WaitForBind(cmd.Context(), f.pid, p, f.timeout, all...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), port)
			return err
		},
	}
}

// Execute runs rootCmd and exits non-zero on error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
