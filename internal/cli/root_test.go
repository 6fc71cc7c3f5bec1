package cli

import (
	"io"
	"testing"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Name() != "sccmap" {
		t.Errorf("root command name = %q, want sccmap", root.Name())
	}
	if root.Version == "" {
		t.Error("root command should carry a version")
	}

	want := []string{"browse", "build", "cache", "completion", "draw", "serve"}
	got := map[string]bool{}
	for _, sub := range root.Commands() {
		got[sub.Name()] = true
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestBuildCommandFlags(t *testing.T) {
	cmd := New(io.Discard, LogInfo).buildCommand()

	for _, name := range []string{"nodes", "links", "manifest", "naming", "number", "no-cache", "no-archive", "refresh"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("build should register --%s", name)
		}
	}
}

func TestDrawCommandFlags(t *testing.T) {
	cmd := New(io.Discard, LogInfo).drawCommand()

	for _, name := range []string{"layout", "width", "height", "seed", "format"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("draw should register --%s", name)
		}
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := New(io.Discard, LogInfo).serveCommand()

	for _, name := range []string{"addr", "watch", "debounce", "max-wait"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("serve should register --%s", name)
		}
	}
}
