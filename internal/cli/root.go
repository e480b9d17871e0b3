// Package cli assembles the Cobra command tree: a root command that runs
// the fuzzer directly (there is no subcommand tree to speak of, since this
// program has one job), plus "replay" and "version".
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is overwritten at build time via -ldflags, following the
// teacher's convention of a package-level Version var.
var Version = "dev"

// osExit is a seam over os.Exit so the exit-on-help/exit-on-version paths
// below stay swappable in tests without ever needing to invoke them.
var osExit = os.Exit

var (
	debugFlag     bool
	verboseFlag   bool
	quietFlag     bool
	versionFlag   bool
	numThreads    int
	outputFlag    string
	portsFlag     string
	stateFlag     string
	stackSizeFlag uint64
	configFlag    string
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	addReplayCommand(cmd)
	addVersionCommand(cmd)
	return cmd
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "iofuzz",
		Short: "A hardware I/O port fuzzer",
		Long:  "iofuzz — issues randomized x86 port-I/O instructions against a live port set and logs every invocation for replay.",

		// Cobra's own -h/--version handling exits 0 and writes help to
		// stdout; spec.md §6 requires both to exit failure, and -h to
		// write to stderr, so the version flag is plain and handled in
		// PersistentPreRunE ourselves (see below), and HelpFunc is
		// overridden, rather than setting Version on the command.
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "iofuzz v%s\n", Version)
				osExit(1)
				return nil
			}
			if verboseFlag && quietFlag {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			return nil
		},
		RunE: runFuzz,
	}

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		osExit(1)
	})

	pflags := rootCmd.PersistentFlags()
	pflags.BoolVarP(&debugFlag, "debug", "d", false, "Enable debug-level operational logging")
	pflags.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable info-level operational logging")
	pflags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress the grace banner and non-essential logging")
	pflags.BoolVar(&quietFlag, "silent", false, "Alias for --quiet")
	pflags.BoolVar(&versionFlag, "version", false, "Print name and version, then exit failure")
	pflags.StringVar(&configFlag, "config", "", "Optional TOML config file pre-supplying defaults")

	flags := rootCmd.Flags()
	flags.IntVar(&numThreads, "num-threads", 1, "Number of concurrent worker threads")
	flags.StringVarP(&outputFlag, "output", "o", "", "CSV log destination (default: stdout)")
	flags.StringVarP(&portsFlag, "ports", "p", "", "Port list/ranges, e.g. \"0x3f8,0x60-0x64\" (default: the full 16-bit space)")
	flags.StringVar(&stateFlag, "state", "", "Seed the shared RNG from an explicit 64-bit state")
	flags.Uint64Var(&stackSizeFlag, "stack-size", 0, "Accepted for CLI compatibility; has no effect")

	return rootCmd
}

// Execute builds and runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	return cmd.Execute()
}
