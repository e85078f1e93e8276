// Package main provides the CLI entry point for vvplay.
package main

import (
	"fmt"
	"os"
)

const (
	appName    = "vvplay"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "play":
		if err := runPlay(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, appVersion)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - volumetric video streaming engine

Usage:
  %s <command> [options]

Commands:
  play      Stream a point-cloud asset
  version   Print version information
  help      Show this help message

Run '%s play --help' for play command options.
`, appName, appName, appName)
}
