package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dsmmcken/iofuzz/internal/dispatch"
	"github.com/dsmmcken/iofuzz/internal/dynarray"
	"github.com/dsmmcken/iofuzz/internal/fuzzer"
	"github.com/dsmmcken/iofuzz/internal/portspec"
	"github.com/dsmmcken/iofuzz/internal/privilege"
	"github.com/dsmmcken/iofuzz/internal/rng"
	"github.com/dsmmcken/iofuzz/internal/variate"
	"github.com/dsmmcken/iofuzz/internal/worker"
)

var (
	replayStateFlag string
	replayPortsFlag string
	replayQuietFlag bool
)

// addReplayCommand wires iofuzz's reproducibility law (spec.md §8 scenario
// 2) into a first-class operation: restore a fresh fuzzer from a captured
// state, print the reproduced operand tuple, then dispatch it exactly as
// the original logged iteration would have.
func addReplayCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Reproduce and re-dispatch a single logged iteration from its state",
		Long: `Replay restores a fresh RNG from a captured 8-byte state (field 3 of a
logged CSV line), reproduces the exact operand tuple that state produced,
prints it in the same field layout as the live log, and then dispatches
that reproduced instruction.`,
		RunE: runReplay,
	}
	cmd.Flags().StringVar(&replayStateFlag, "state", "", "Captured 8-byte state to replay from (required)")
	cmd.Flags().StringVarP(&replayPortsFlag, "ports", "p", "", "Port list the original run used, if restricted")
	cmd.Flags().BoolVarP(&replayQuietFlag, "quiet", "q", false, "Suppress the grace banner")
	cmd.MarkFlagRequired("state")
	parent.AddCommand(cmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	seed, err := strconv.ParseUint(replayStateFlag, 0, 64)
	if err != nil {
		return fmt.Errorf("parsing --state: %w", err)
	}
	var state rng.State
	for i := range state {
		state[i] = byte(seed >> (8 * i))
	}

	ports, err := portspec.Parse(replayPortsFlag)
	if err != nil {
		return err
	}

	if err := privilege.Acquire(); err != nil {
		return fmt.Errorf("acquiring I/O privilege: %w", err)
	}
	if !replayQuietFlag {
		worker.PrintGraceBanner(cmd.ErrOrStderr())
	}

	f, err := fuzzer.NewWithState(rng.New(0), state)
	if err != nil {
		return err
	}
	if len(ports) > 0 {
		if err := f.SetPorts(dynarray.FromSlice(ports)); err != nil {
			return err
		}
		// SetPorts regenerated from the already-advanced RNG; restore the
		// captured state so the tuple is the one that state produces.
		if err := f.SetState(state); err != nil {
			return err
		}
	}

	reproduced := f.Variates()
	mnemonic, err := dispatch.FromSelector(reproduced[variate.SlotSelector])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), worker.FormatLine(0, f.State(), mnemonic, reproduced))

	return f.Iterate()
}
