// Package main is the entry point for numeralctl, the command-line client
// for the numeral service.
package main

import "github.com/jsamuelsen11/numeral-service/internal/cli"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Execute(version)
}
