package main

import "github.com/bnema/ledge/internal/cli/cmd"

// Build-time variables (set via ldflags).
var version = "dev"

func main() {
	cmd.Execute(version)
}
