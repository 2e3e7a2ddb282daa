// Package main is the single-binary entrypoint for Touchwood: the CLI, the
// local API server and every gamification engine in one binary.
package main

import "github.com/touchwood-app/touchwood/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
