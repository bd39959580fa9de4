package main

import "testing"

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"encoding", "spectrum", "qam", "rip", "stopwait"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Missing subcommand: %s", name)
		}
	}
}

func TestRipSubcommandHasRouterFilter(t *testing.T) {
	flag := ripCmd.Flags().Lookup("router")
	if flag == nil {
		t.Fatal("rip subcommand is missing the --router display filter")
	}
	if flag.Shorthand != "r" {
		t.Fatalf("Unexpected shorthand for --router: %q", flag.Shorthand)
	}
}
