package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dsmmcken/iofuzz/internal/config"
	"github.com/dsmmcken/iofuzz/internal/portspec"
	"github.com/dsmmcken/iofuzz/internal/worker"
	"github.com/dsmmcken/iofuzz/internal/worklog"
)

// runFuzz is the root command's RunE: it resolves each setting through
// flag > env var > config file > default, following the same precedence
// shape as the teacher's own ResolveVersion.
func runFuzz(cmd *cobra.Command, args []string) error {
	cfgFile, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	numThreadsResolved := numThreads
	if !cmd.Flags().Changed("num-threads") {
		if env := os.Getenv("IOFUZZ_NUM_THREADS"); env != "" {
			if n, err := strconv.Atoi(env); err == nil && n > 0 {
				numThreadsResolved = n
			}
		} else if cfgFile.NumThreads > 0 {
			numThreadsResolved = cfgFile.NumThreads
		}
	}
	outputResolved := outputFlag
	if !cmd.Flags().Changed("output") {
		if env := os.Getenv("IOFUZZ_OUTPUT"); env != "" {
			outputResolved = env
		} else if cfgFile.Output != "" {
			outputResolved = cfgFile.Output
		}
	}
	portsResolved := portsFlag
	if !cmd.Flags().Changed("ports") {
		if env := os.Getenv("IOFUZZ_PORTS"); env != "" {
			portsResolved = env
		} else if cfgFile.Ports != "" {
			portsResolved = cfgFile.Ports
		}
	}
	stateResolved := stateFlag
	if !cmd.Flags().Changed("state") {
		if env := os.Getenv("IOFUZZ_STATE"); env != "" {
			stateResolved = env
		} else if cfgFile.State != "" {
			stateResolved = cfgFile.State
		}
	}
	stackSizeResolved := stackSizeFlag
	if !cmd.Flags().Changed("stack-size") {
		if env := os.Getenv("IOFUZZ_STACK_SIZE"); env != "" {
			if n, err := strconv.ParseUint(env, 0, 64); err == nil && n > 0 {
				stackSizeResolved = n
			}
		} else if cfgFile.StackSize > 0 {
			stackSizeResolved = cfgFile.StackSize
		}
	}
	quietResolved := quietFlag || os.Getenv("IOFUZZ_QUIET") != "" || cfgFile.Quiet

	seed, err := parseState(stateResolved)
	if err != nil {
		return err
	}

	ports, err := portspec.Parse(portsResolved)
	if err != nil {
		return err
	}

	logger := worklog.New(debugFlag, verboseFlag, quietResolved)

	return worker.Run(worker.Config{
		NumThreads: numThreadsResolved,
		Output:     outputResolved,
		Ports:      ports,
		Quiet:      quietResolved,
		Seed:       seed,
		StackSize:  stackSizeResolved,
	}, cmd.ErrOrStderr(), logger)
}

// parseState parses --state (empty meaning zero) as 0x-hex/0-octal/decimal,
// matching spec.md §6's strconv base-0 grammar.
func parseState(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 0, 64)
}
