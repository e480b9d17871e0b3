package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestSubcommandsRegistered(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"replay", "version"} {
		if !names[name] {
			t.Errorf("%q subcommand not registered on root command", name)
		}
	}
}

func TestVerboseAndQuietAreMutuallyExclusive(t *testing.T) {
	root := NewRootCmd()
	defer func() { verboseFlag, quietFlag = false, false }()

	verboseFlag, quietFlag = true, true
	if err := root.PersistentPreRunE(root, nil); err == nil {
		t.Error("expected an error when --verbose and --quiet are both set")
	}
}

func TestVersionFlagExitsFailure(t *testing.T) {
	root := NewRootCmd()
	versionFlag = true
	defer func() { versionFlag = false }()

	var exitCode int
	oldExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = oldExit }()

	if err := root.PersistentPreRunE(root, nil); err != nil {
		t.Errorf("PersistentPreRunE returned an error: %v", err)
	}
	if exitCode != 1 {
		t.Errorf("--version exit code = %d, want 1", exitCode)
	}
}

func TestParseStateAcceptsHexOctalDecimal(t *testing.T) {
	cases := map[string]uint64{
		"":           0,
		"0x10":       16,
		"020":        16,
		"16":         16,
		"0xFFFFFFFF": 0xFFFFFFFF,
	}
	for in, want := range cases {
		got, err := parseState(in)
		if err != nil {
			t.Fatalf("parseState(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parseState(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestReplayRequiresState(t *testing.T) {
	root := NewRootCmd()
	var replayCmd *cobra.Command
	for _, c := range root.Commands() {
		if c.Name() == "replay" {
			replayCmd = c
		}
	}
	if replayCmd == nil {
		t.Fatal("replay subcommand not found")
	}
	if f := replayCmd.Flags().Lookup("state"); f == nil {
		t.Fatal("replay must define a --state flag")
	}
}
